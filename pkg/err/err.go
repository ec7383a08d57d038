package errprocess

import (
	"errors"

	"elevator_pitch_messaging/pkg/logger"
)

// Set set err info
func Set(errMsg string) error {
	logger.Log.Error(errMsg)
	return errors.New(errMsg)
}
