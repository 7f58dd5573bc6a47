package campaign

import (
	"fmt"
	"sort"
	"strings"
	"time"
	_ "time/tzdata" // embedded zoneinfo for campaign timezones

	"github.com/vivekstills/boat/go/internal/countdown"
	"github.com/vivekstills/boat/go/internal/models"
)

// Bonus is a promotional perk shown next to the board
type Bonus struct {
	Title string `yaml:"title" json:"title"`
	Value string `yaml:"value" json:"value"`
}

// Campaign is the static content of a leaderboard promotion
type Campaign struct {
	Name         string                     `yaml:"name" json:"name"`
	TargetDate   string                     `yaml:"target_date" json:"target_date"`
	Timezone     string                     `yaml:"timezone" json:"timezone"`
	ReferralCode string                     `yaml:"referral_code" json:"referral_code"`
	ReferralLink string                     `yaml:"referral_link" json:"referral_link"`
	PartnerLink  string                     `yaml:"partner_link" json:"partner_link"`
	DiscordLink  string                     `yaml:"discord_link" json:"discord_link"`
	KickLink     string                     `yaml:"kick_link" json:"kick_link"`
	Bonuses      []Bonus                    `yaml:"bonuses" json:"bonuses"`
	Regions      map[string][]models.Player `yaml:"regions" json:"regions"`
}

// Location resolves the campaign timezone, UTC when unset
func (c *Campaign) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid campaign timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Target parses the campaign end date in the campaign timezone
func (c *Campaign) Target() (time.Time, error) {
	loc, err := c.Location()
	if err != nil {
		return time.Time{}, err
	}
	return countdown.ParseTarget(c.TargetDate, loc)
}

// TimeLeft is the countdown to the campaign end as seen at now
func (c *Campaign) TimeLeft(now time.Time) (countdown.TimeLeft, error) {
	target, err := c.Target()
	if err != nil {
		return countdown.TimeLeft{}, err
	}
	return countdown.Remaining(target, now), nil
}

// RegionNames returns the configured static boards in sorted order
func (c *Campaign) RegionNames() []string {
	names := make([]string, 0, len(c.Regions))
	for name := range c.Regions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// StaticSnapshot wraps a configured static board. Region names are case-insensitive.
func (c *Campaign) StaticSnapshot(region string) (*models.Snapshot, error) {
	for name, players := range c.Regions {
		if strings.EqualFold(name, region) {
			return models.NewSnapshot(players, time.Time{}, models.SourceStatic)
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownRegion, region)
}

// Validate checks the campaign content is usable
func (c *Campaign) Validate() error {
	if _, err := c.Target(); err != nil {
		return err
	}
	for name, players := range c.Regions {
		if err := models.ValidateRanks(players); err != nil {
			return fmt.Errorf("region %s: %w", name, err)
		}
	}
	return nil
}
