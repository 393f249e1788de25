package redis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestKeys(t *testing.T) {
	assert.Equal(t, "origination:application:abc", applicationKey("abc"))
	assert.Equal(t, "origination:customer:CUST001:applications", customerKey("CUST001"))
}

func TestNewApplicationRepo(t *testing.T) {
	repo := NewApplicationRepo(nil, 24*time.Hour)
	assert.Equal(t, 24*time.Hour, repo.ttl)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := decode([]byte(`{"id":"x"}`))
	assert.Error(t, err)

	_, err = decode([]byte(`not json`))
	assert.Error(t, err)
}
