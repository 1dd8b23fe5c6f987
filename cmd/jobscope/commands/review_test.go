package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jinford/jobscope/internal/core/review"
)

func TestBuildDigestNotifier(t *testing.T) {
	tests := []struct {
		name       string
		notifyFile string
		wantMulti  bool
	}{
		{
			name:       "ファイル未指定なら標準出力のみ",
			notifyFile: "",
			wantMulti:  false,
		},
		{
			name:       "ファイル指定時は標準出力とファイルの両方",
			notifyFile: "/tmp/digest.txt",
			wantMulti:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notifier := buildDigestNotifier(tt.notifyFile)

			if tt.wantMulti {
				assert.IsType(t, &review.MultiNotifier{}, notifier)
			} else {
				assert.IsType(t, &review.StandardOutputNotifier{}, notifier)
			}
		})
	}
}
