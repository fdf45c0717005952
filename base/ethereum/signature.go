package ethereum

import (
	"bytes"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"golang.org/x/xerrors"

	"github.com/x-xyz/escrowapi/domain"
)

// ValidateMsgSignature reports whether signature is signer's personal_sign of message
func ValidateMsgSignature(message []byte, signature, signer string) (bool, error) {
	return validateSignature(message, signature, signer, true)
}

func ValidateHashSignature(hash []byte, signature, signer string) (bool, error) {
	return validateSignature(hash, signature, signer, false)
}

func validateSignature(data []byte, signature, signer string, applyTextHash bool) (bool, error) {
	hash := data
	if applyTextHash {
		hash = accounts.TextHash(data)
	}
	address := common.HexToAddress(signer)
	sig, err := hexutil.Decode(signature)
	if err != nil {
		return false, xerrors.Errorf("%v: %w", err, domain.ErrInvalidSignature)
	}
	recoveredAddress, err := ecRecover(hash, sig)
	if err != nil {
		return false, xerrors.Errorf("%v: %w", err, domain.ErrInvalidSignature)
	}
	return bytes.Equal(address.Bytes(), recoveredAddress.Bytes()), nil
}

// ecRecover returns the address for the account that was used to create the signature.
// copy of internal go-ethereum function:
// https://github.com/ethereum/go-ethereum/blob/v1.10.9/internal/ethapi/api.go#L524
func ecRecover(data []byte, sig []byte) (common.Address, error) {
	if len(sig) != crypto.SignatureLength {
		return common.Address{}, fmt.Errorf("signature must be %d bytes long", crypto.SignatureLength)
	}

	// wallets answer with V as 0/1 or 27/28
	v := sig[crypto.RecoveryIDOffset]
	if v < 27 {
		v += 27
	}
	if v != 27 && v != 28 {
		return common.Address{}, fmt.Errorf("invalid Ethereum signature (V is not 27 or 28)")
	}

	// keep the caller's buffer intact
	rsv := make([]byte, len(sig))
	copy(rsv, sig)
	rsv[crypto.RecoveryIDOffset] = v - 27

	rpk, err := crypto.SigToPub(data, rsv)
	if err != nil {
		return common.Address{}, err
	}

	return crypto.PubkeyToAddress(*rpk), nil
}
