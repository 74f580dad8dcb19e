package ownership

import "errors"

var (
	ErrNotOwner        = errors.New("user does not own this device")
	ErrOwnershipExists = errors.New("ownership already granted")
)
