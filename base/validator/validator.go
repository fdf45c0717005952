package validator

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// IsValidAddress returns is an address valid or not
func IsValidAddress(address string) bool {
	if !common.IsHexAddress(address) {
		return false
	}
	checksum := common.HexToAddress(address).Hex()
	return strings.ToLower(checksum) == strings.ToLower(address)
}

func isEthAddress(fl validator.FieldLevel) bool {
	return IsValidAddress(fl.Field().String())
}

// New returns an echo.Validator whose eth_addr tag accepts any casing of a
// 20 byte hex address
func New() echo.Validator {
	v := validator.New()
	// only fails on a nil func or a restricted tag
	_ = v.RegisterValidation("eth_addr", isEthAddress)
	return NewCustomValidator(v)
}

func NewCustomValidator(v *validator.Validate) echo.Validator {
	return &CustomValidator{v}
}

type CustomValidator struct {
	validator *validator.Validate
}

func (v *CustomValidator) Validate(i interface{}) error {
	if err := v.validator.Struct(i); err != nil {
		return err
	}
	return nil
}
