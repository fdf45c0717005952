package usecase

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/x-xyz/escrowapi/domain"
	mContract "github.com/x-xyz/escrowapi/service/chain/contract/mocks"
)

func TestVerifyListing(t *testing.T) {
	req := require.New(t)

	erc721 := &mContract.Erc721Contract{}
	erc721.On("Supports721Interface", mock.Anything, nft).Return(true, nil)
	erc721.On("OwnerOf", mock.Anything, nft, domain.TokenId("1")).Return(domain.Address("0xseller"), nil)
	erc721.On("OwnerOf", mock.Anything, nft, domain.TokenId("2")).Return(domain.Address("0xother"), nil)
	erc721.On("IsApprovedForAll", mock.Anything, nft, domain.Address("0xSeller"), marketplace).Return(true, nil)

	v := NewOnchainVerifier(erc721, marketplace)
	req.NoError(v.VerifyListing(mockCtx, nft, "1", "0xSeller"))

	err := v.VerifyListing(mockCtx, nft, "2", "0xSeller")
	req.True(errors.Is(err, domain.ErrTransferNotAuthorized))
	erc721.AssertExpectations(t)
}

func TestVerifyListingNotErc721(t *testing.T) {
	erc721 := &mContract.Erc721Contract{}
	erc721.On("Supports721Interface", mock.Anything, nft).Return(false, nil)

	err := NewOnchainVerifier(erc721, marketplace).VerifyListing(mockCtx, nft, "1", "0xseller")
	require.True(t, errors.Is(err, domain.ErrBadParamInput))
}

func TestVerifyListingNotApproved(t *testing.T) {
	erc721 := &mContract.Erc721Contract{}
	erc721.On("Supports721Interface", mock.Anything, nft).Return(true, nil)
	erc721.On("OwnerOf", mock.Anything, nft, domain.TokenId("1")).Return(domain.Address("0xseller"), nil)
	erc721.On("IsApprovedForAll", mock.Anything, nft, domain.Address("0xseller"), marketplace).Return(false, nil)

	err := NewOnchainVerifier(erc721, marketplace).VerifyListing(mockCtx, nft, "1", "0xseller")
	require.True(t, errors.Is(err, domain.ErrTransferNotAuthorized))
}
