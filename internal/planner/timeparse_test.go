package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseStartMinutes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"midnight twelve AM", "12:00 AM", 0},
		{"noon twelve PM", "12:00 PM", 720},
		{"evening PM shift", "10:00 PM", 1320},
		{"morning AM unchanged", "9:30 AM", 570},
		{"twenty four hour clock", "22:00", 1320},
		{"bare hour", "7 PM", 1140},
		{"close literal", "Close", 1440},
		{"close embedded", "until close", 1440},
		{"close mixed case", "CLOSE", 1440},
		{"empty string", "", 0},
		{"garbage", "whenever babe", 0},
		{"time embedded in text", "Doors 11:30 PM sharp", 1410},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseStartMinutes(tt.input))
		})
	}
}

func TestParseStartMinutesBounds(t *testing.T) {
	inputs := []string{
		"12:00 AM", "12:00 PM", "11:59 PM", "Close", "", "0:00", "23:59",
		"9 AM", "nonsense", "3:15pm", "99:99",
	}
	for _, in := range inputs {
		got := ParseStartMinutes(in)
		assert.GreaterOrEqual(t, got, 0, "input %q", in)
		assert.LessOrEqual(t, got, 1440, "input %q", in)
	}
}
