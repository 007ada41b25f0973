package builders

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoerceFloat(t *testing.T) {
	tests := []struct {
		name    string
		input   interface{}
		want    float64
		wantErr bool
	}{
		{name: "float", input: 98.6, want: 98.6},
		{name: "int", input: 120, want: 120},
		{name: "numeric string", input: "98.6", want: 98.6},
		{name: "padded string", input: " 72 ", want: 72},
		{name: "zero", input: "0", want: 0},
		{name: "word", input: "abc", wantErr: true},
		{name: "empty string", input: "", wantErr: true},
		{name: "nil", input: nil, wantErr: true},
		{name: "bool", input: true, wantErr: true},
		{name: "not a number", input: "NaN", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CoerceFloat(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
