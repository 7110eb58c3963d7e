package domain_test

import (
	"testing"

	"github.com/orekiez/pudu-field/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestClampFill(t *testing.T) {
	assert.Equal(t, 0, domain.ClampFill(-5))
	assert.Equal(t, 0, domain.ClampFill(0))
	assert.Equal(t, 37, domain.ClampFill(37))
	assert.Equal(t, 100, domain.ClampFill(100))
	assert.Equal(t, 100, domain.ClampFill(140))
}

func TestQuantizeFill(t *testing.T) {
	cases := map[int]int{
		-10: 0,
		0:   0,
		12:  0,
		13:  25,
		25:  25,
		37:  25,
		38:  50,
		60:  50,
		63:  75,
		75:  75,
		88:  100,
		100: 100,
		250: 100,
	}
	for in, want := range cases {
		assert.Equal(t, want, domain.QuantizeFill(in), "input %d", in)
	}
}

func TestQuantizeFillAlwaysOnStep(t *testing.T) {
	steps := map[int]bool{}
	for _, s := range domain.FillSteps {
		steps[s] = true
	}
	for v := -20; v <= 120; v++ {
		assert.True(t, steps[domain.QuantizeFill(v)], "input %d", v)
	}
}

func TestPersisted(t *testing.T) {
	id := int64(7)
	assert.False(t, domain.Punto{}.Persisted())
	assert.True(t, domain.Punto{ID: &id}.Persisted())
}
