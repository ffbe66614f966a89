package domain

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategory_UnmarshalPopulatedObject(t *testing.T) {
	var p Product
	err := json.Unmarshal([]byte(`{"_id":"p1","name":"Nocturne Veil","price":165,"category":{"_id":"c1","name":"Floral Amber"}}`), &p)
	require.NoError(t, err)

	assert.Equal(t, "Floral Amber", p.Category.Name)
	assert.Equal(t, "c1", p.Category.ID)
}

func TestCategory_UnmarshalPlainName(t *testing.T) {
	var p Product
	err := json.Unmarshal([]byte(`{"_id":"p1","name":"Nocturne Veil","price":165,"category":"Floral Amber"}`), &p)
	require.NoError(t, err)

	assert.Equal(t, "Floral Amber", p.Category.Name)
}

func TestCategory_BareObjectIDCarriesNoName(t *testing.T) {
	var p Product
	err := json.Unmarshal([]byte(`{"_id":"p1","name":"Nocturne Veil","price":165,"category":"64f1c2a9b3d4e5f60718293a"}`), &p)
	require.NoError(t, err)

	assert.Equal(t, "", p.Category.Name)
	assert.Equal(t, "64f1c2a9b3d4e5f60718293a", p.Category.ID)
}

func TestAudience_BackendGender(t *testing.T) {
	assert.Equal(t, "women", AudienceHer.BackendGender())
	assert.Equal(t, "men", AudienceHim.BackendGender())
	assert.Equal(t, "", AudienceUnisex.BackendGender())
	assert.Equal(t, "", Audience("").BackendGender())
}

func TestHandoff_WaitCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	h := Handoff{Target: "/confirmation?orderRef=BLIS-2001", Delay: RedirectDelay}
	start := time.Now()
	err := h.Wait(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), time.Second)
}

func TestHandoff_ZeroDelayReturnsImmediately(t *testing.T) {
	h := Handoff{Target: "/payment?orderId=o1"}
	assert.NoError(t, h.Wait(context.Background()))
}
