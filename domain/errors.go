package domain

import "errors"

var (
	// ErrInternalServerError will throw if any the Internal Server Error happen
	ErrInternalServerError = errors.New("Internal Server Error")
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("Your requested Item is not found")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput = errors.New("Given Param is not valid")

	// request error
	ErrInvalidAddress   = errors.New("Invalid address")
	ErrInvalidSignature = errors.New("Invalid signature")

	// token registry errors
	ErrUnknownToken = errors.New("unknown token")
	ErrNotOwner     = errors.New("caller is not the token owner")

	// market ledger errors
	ErrUnknownListing     = errors.New("unknown listing")
	ErrNotSeller          = errors.New("caller is not the listing seller")
	ErrNotActive          = errors.New("listing is not active")
	ErrAlreadyListed      = errors.New("token already has an active listing")
	ErrAlreadySold        = errors.New("listing already sold")
	ErrInsufficientFee    = errors.New("paid fee is below the listing fee")
	ErrExcessFee          = errors.New("paid fee exceeds the listing fee")
	ErrWrongPaymentAmount = errors.New("payment must equal the asking price")
	ErrSelfTradeForbidden = errors.New("seller may not buy own listing")

	// settlement errors
	ErrInsufficientFunds = errors.New("insufficient funds")
)
