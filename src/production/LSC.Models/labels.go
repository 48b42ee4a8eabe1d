package lscmodels

import "strings"

type WelfareLevel string

const (
	WelfareGood     WelfareLevel = "good"
	WelfareModerate WelfareLevel = "moderate"
	WelfarePoor     WelfareLevel = "poor"
	WelfareUnknown  WelfareLevel = "unknown"
)

type ConditionKind string

const (
	ConditionClear  ConditionKind = "clear"
	ConditionRain   ConditionKind = "rain"
	ConditionCloudy ConditionKind = "cloudy"
	ConditionStorm  ConditionKind = "storm"
	ConditionSnow   ConditionKind = "snow"
	ConditionOther  ConditionKind = "other"
)

type labelRule[T any] struct {
	keywords []string
	value    T
}

// Rules are checked in order, the first keyword hit wins.
var welfareRules = []labelRule[WelfareLevel]{
	{keywords: []string{"high", "good", "normal"}, value: WelfareGood},
	{keywords: []string{"medium", "moderate"}, value: WelfareModerate},
	{keywords: []string{"low", "poor", "stress"}, value: WelfarePoor},
}

var conditionRules = []labelRule[ConditionKind]{
	{keywords: []string{"clear", "sunny"}, value: ConditionClear},
	{keywords: []string{"rain"}, value: ConditionRain},
	{keywords: []string{"cloud"}, value: ConditionCloudy},
	{keywords: []string{"storm"}, value: ConditionStorm},
	{keywords: []string{"snow"}, value: ConditionSnow},
}

// ClassifyWelfare maps a free-text welfare label onto a WelfareLevel
func ClassifyWelfare(label string) WelfareLevel {
	return classify(label, welfareRules, WelfareUnknown)
}

// ClassifyCondition maps a free-text weather label onto a ConditionKind
func ClassifyCondition(label string) ConditionKind {
	return classify(label, conditionRules, ConditionOther)
}

func classify[T any](label string, rules []labelRule[T], fallback T) T {
	normalized := strings.ToLower(strings.TrimSpace(label))
	if normalized == "" {
		return fallback
	}
	for _, rule := range rules {
		for _, keyword := range rule.keywords {
			if strings.Contains(normalized, keyword) {
				return rule.value
			}
		}
	}
	return fallback
}
