package lscmodels

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyWelfare(t *testing.T) {
	cases := map[string]WelfareLevel{
		"High":            WelfareGood,
		"good":            WelfareGood,
		" Normal ":        WelfareGood,
		"Medium":          WelfareModerate,
		"moderate stress": WelfareModerate,
		"LOW":             WelfarePoor,
		"heat stress":     WelfarePoor,
		"poor":            WelfarePoor,
		"":                WelfareUnknown,
		"n/a":             WelfareUnknown,
	}
	for label, want := range cases {
		assert.Equal(t, want, ClassifyWelfare(label), "label %q", label)
	}
}

func TestClassifyCondition(t *testing.T) {
	cases := map[string]ConditionKind{
		"Clear sky":     ConditionClear,
		"sunny":         ConditionClear,
		"light rain":    ConditionRain,
		"Broken clouds": ConditionCloudy,
		"Thunderstorm":  ConditionStorm,
		"snow":          ConditionSnow,
		"mist":          ConditionOther,
		"":              ConditionOther,
	}
	for label, want := range cases {
		assert.Equal(t, want, ClassifyCondition(label), "label %q", label)
	}
}

func TestReadingClassifiers(t *testing.T) {
	r := Reading{Welfare: "Good", Condition: "rain"}
	assert.Equal(t, WelfareGood, r.WelfareLevel())
	assert.Equal(t, ConditionRain, r.ConditionKind())
}
