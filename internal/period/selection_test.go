package period_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/salesagent/internal/period"
)

func TestNewSelection(t *testing.T) {
	type args struct {
		preset, start, end string
	}

	type testCase struct {
		name    string
		args    args
		want    period.Selection
		wantErr error
	}

	tests := []testCase{
		{
			name: "Empty",
			want: period.Selection{Preset: period.All},
		},
		{
			name: "PresetIgnoresDates",
			args: args{preset: "Últimos 7 dias", start: "garbage"},
			want: period.Selection{Preset: period.Last7Days},
		},
		{
			name: "DatesImplyCustom",
			args: args{start: "2024-03-01", end: "10/03/2024"},
			want: period.Selection{Preset: period.Custom, Start: day(2024, 3, 1), End: day(2024, 3, 10)},
		},
		{
			name:    "BadDate",
			args:    args{preset: "custom", start: "2024-13-01"},
			wantErr: period.ErrInvalidDate,
		},
		{
			name:    "UnknownPreset",
			args:    args{preset: "fortnight"},
			wantErr: period.ErrUnknownPreset,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := period.NewSelection(tt.args.preset, tt.args.start, tt.args.end, time.UTC)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want.Preset, got.Preset)
			assert.True(t, tt.want.Start.Equal(got.Start))
			assert.True(t, tt.want.End.Equal(got.End))
		})
	}
}
