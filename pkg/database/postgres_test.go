package database

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestUnavailable(t *testing.T) {
	opErr := &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}

	assert.True(t, Unavailable(opErr))
	assert.True(t, Unavailable(fmt.Errorf("toggle: %w", opErr)))
	assert.True(t, Unavailable(driver.ErrBadConn))

	assert.False(t, Unavailable(nil))
	assert.False(t, Unavailable(gorm.ErrRecordNotFound))
	assert.False(t, Unavailable(gorm.ErrDuplicatedKey))
	assert.False(t, Unavailable(context.Canceled))
}
