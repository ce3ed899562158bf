package coordinator

import "errors"

var ErrNotReady = errors.New("room-not-ready")
