package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetModelFallbackChain(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "gemini-2.0-flash", cfg.GetModel(TierStandard))

	delete(cfg.Models, TierAdvanced)
	assert.Equal(t, "gemini-2.0-flash", cfg.GetModel(TierAdvanced))

	delete(cfg.Models, TierStandard)
	assert.Equal(t, "gemini-2.0-flash-lite", cfg.GetModel(TierAdvanced))

	delete(cfg.Models, TierLite)
	assert.Equal(t, "", cfg.GetModel(TierAdvanced))
}

func TestWithModelDoesNotMutate(t *testing.T) {
	base := DefaultConfig()
	custom := base.WithModel(TierStandard, "gemini-exp")

	assert.Equal(t, "gemini-exp", custom.GetModel(TierStandard))
	assert.Equal(t, "gemini-2.0-flash", base.GetModel(TierStandard))
}
