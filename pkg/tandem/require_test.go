package tandem

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequire(t *testing.T) {
	assert.Nil(t, Require(true, "anything"))

	err := Require(false, "pool-cash", FlagRefund)
	assert.NotNil(t, err)

	var rerr Error
	assert.ErrorAs(t, err, &rerr)
	assert.Equal(t, "pool-cash", rerr.Msg)
	assert.Equal(t, FlagRefund, rerr.Flag)
}
