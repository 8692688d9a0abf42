package models

import "errors"

// Domain errors shared by repositories and services. Controllers map these
// onto HTTP statuses; everything else surfaces as a generic failure.
var (
	// ErrProductNotFound: the product vanished between page load and
	// placement, or the slug never existed.
	ErrProductNotFound = errors.New("product not found")

	// ErrOutOfStock: the transactional re-read observed no stock left for
	// the selected size. Recoverable: the buyer picks another size.
	ErrOutOfStock = errors.New("selected size out of stock")

	// ErrUploadFailed: the blob store rejected the payment screenshot.
	// Placement aborts before the transaction is touched.
	ErrUploadFailed = errors.New("payment screenshot upload failed")

	// ErrNotFound: a requested record is absent.
	ErrNotFound = errors.New("not found")

	// ErrEmailTaken: registration with an already-used email.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials: login failure, deliberately unspecific.
	ErrInvalidCredentials = errors.New("invalid email or password")
)
