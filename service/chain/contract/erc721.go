package contract

import (
	"math/big"
	"strings"

	ethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/xerrors"

	bCtx "github.com/x-xyz/escrowapi/base/ctx"
	"github.com/x-xyz/escrowapi/domain"
	"github.com/x-xyz/escrowapi/domain/keys"
	"github.com/x-xyz/escrowapi/service/cache"
	"github.com/x-xyz/escrowapi/service/chain"
)

const erc721ABIJson = `[
{"constant":true,"inputs":[{"name":"tokenId","type":"uint256"}],"name":"ownerOf","outputs":[{"name":"","type":"address"}],"stateMutability":"view","type":"function"},
{"constant":true,"inputs":[{"name":"owner","type":"address"},{"name":"operator","type":"address"}],"name":"isApprovedForAll","outputs":[{"name":"","type":"bool"}],"stateMutability":"view","type":"function"},
{"constant":true,"inputs":[{"name":"interfaceId","type":"bytes4"}],"name":"supportsInterface","outputs":[{"name":"","type":"bool"}],"stateMutability":"view","type":"function"}
]`

var erc721ABI ethabi.ABI

func init() {
	parsed, err := ethabi.JSON(strings.NewReader(erc721ABIJson))
	if err != nil {
		panic(err)
	}
	erc721ABI = parsed
}

type Erc721Contract interface {
	Supports721Interface(ctx bCtx.Ctx, addr domain.Address) (bool, error)
	OwnerOf(ctx bCtx.Ctx, addr domain.Address, tokenId domain.TokenId) (domain.Address, error)
	IsApprovedForAll(ctx bCtx.Ctx, addr, owner, operator domain.Address) (bool, error)
}

type Erc721 struct {
	chainService      chain.Client
	chainId           domain.ChainId
	abi               ethabi.ABI
	erc721InterfaceId [4]byte
	cache             cache.Service
}

// NewErc721 reads erc721 contracts on chainId. Interface support answers are
// kept in c, which may be nil.
func NewErc721(chainService chain.Client, chainId domain.ChainId, c cache.Service) *Erc721 {
	var interfaceId [4]byte
	copy(interfaceId[:], common.Hex2Bytes("80ac58cd"))
	return &Erc721{
		abi:               erc721ABI,
		chainService:      chainService,
		chainId:           chainId,
		erc721InterfaceId: interfaceId,
		cache:             c,
	}
}

func (e *Erc721) Supports721Interface(ctx bCtx.Ctx, addr domain.Address) (bool, error) {
	load := func(container interface{}) error {
		unpacked, err := e.chainService.Call(ctx, e.chainId, common.HexToAddress(addr.String()), nil, e.abi, "supportsInterface", e.erc721InterfaceId)
		if err != nil {
			return err
		}
		*container.(*bool) = unpacked[0].(bool)
		return nil
	}

	var supported bool
	if e.cache == nil {
		err := load(&supported)
		return supported, err
	}
	key := keys.RedisKey(keys.PfxErc721Interface, addr.ToLowerStr())
	err := e.cache.GetOrLoad(ctx, key, &supported, load)
	return supported, err
}

func (e *Erc721) OwnerOf(ctx bCtx.Ctx, addr domain.Address, tokenId domain.TokenId) (domain.Address, error) {
	id, ok := new(big.Int).SetString(tokenId.String(), 10)
	if !ok {
		return "", xerrors.Errorf("tokenId %s: %w", tokenId, domain.ErrInvalidNumberFormat)
	}
	unpacked, err := e.chainService.Call(ctx, e.chainId, common.HexToAddress(addr.String()), nil, e.abi, "ownerOf", id)
	if err != nil {
		return "", err
	}
	return domain.Address(unpacked[0].(common.Address).Hex()).ToLower(), nil
}

func (e *Erc721) IsApprovedForAll(ctx bCtx.Ctx, addr, owner, operator domain.Address) (bool, error) {
	unpacked, err := e.chainService.Call(ctx, e.chainId, common.HexToAddress(addr.String()), nil, e.abi, "isApprovedForAll",
		common.HexToAddress(owner.String()), common.HexToAddress(operator.String()))
	if err != nil {
		return false, err
	}
	return unpacked[0].(bool), nil
}
