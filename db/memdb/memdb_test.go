package memdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemdb(t *testing.T) {
	store := New()

	err := store.NewBucket("TEST")
	assert.Nil(t, err)

	err = store.Put("TEST", []byte("alpha"), []byte("one"))
	assert.Nil(t, err)
	err = store.Put("TEST", []byte("alpine"), []byte("two"))
	assert.Nil(t, err)
	err = store.Put("OTHER", []byte("alpha"), []byte("three"))
	assert.Nil(t, err)

	v, err := store.Get("TEST", []byte("alpha"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("one"), v)

	// buckets are isolated
	v, err = store.Get("OTHER", []byte("alpha"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("three"), v)

	// missing key yields nil without error
	v, err = store.Get("TEST", []byte("missing"))
	assert.Nil(t, err)
	assert.Nil(t, v)

	vals, err := store.GetAll("TEST", []byte("alp"))
	assert.Nil(t, err)
	assert.Equal(t, 2, len(vals))

	err = store.Delete("TEST", []byte("alpha"))
	assert.Nil(t, err)
	v, err = store.Get("TEST", []byte("alpha"))
	assert.Nil(t, err)
	assert.Nil(t, v)

	err = store.Close()
	assert.Nil(t, err)
	_, err = store.Get("TEST", []byte("alpha"))
	assert.NotNil(t, err)
}
