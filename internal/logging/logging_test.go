// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		verbose   bool
		wantDebug bool
		wantInfo  bool
	}{
		{verbose: false, wantDebug: false, wantInfo: false},
		{verbose: true, wantDebug: true, wantInfo: true},
	}
	for _, tt := range tests {
		logger, err := New(tt.verbose)
		require.NoError(t, err)
		core := logger.Core()
		assert.Equal(t, tt.wantDebug, core.Enabled(zapcore.DebugLevel), "verbose=%v", tt.verbose)
		assert.Equal(t, tt.wantInfo, core.Enabled(zapcore.InfoLevel), "verbose=%v", tt.verbose)
		assert.True(t, core.Enabled(zapcore.WarnLevel))
	}
}
