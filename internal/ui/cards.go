package ui

import (
	"strconv"
	"time"

	"github.com/papapumpkin/uptake/internal/adoption"
)

// Card is one dashboard stat tile.
type Card struct {
	Value string
	Label string
}

// StatCards returns the tiles shown for a framework: download and star
// counts, growth rate, launch date and the modeled adoption at now.
func StatCards(fw adoption.Framework, s adoption.Series, now time.Time) []Card {
	today := "-"
	if sm, ok := s.ValueAt(now); ok {
		today = FormatPercent(sm.Adoption)
	}
	return []Card{
		{Value: Thousands(fw.NPMWeekly()), Label: "NPM downloads/week"},
		{Value: Thousands(fw.GitHubStars()), Label: "GitHub stars"},
		{Value: strconv.FormatFloat(fw.Params().R, 'f', 2, 64), Label: "Growth rate r"},
		{Value: fw.LaunchDateString(), Label: "Launch date"},
		{Value: today, Label: "Adoption today"},
	}
}
