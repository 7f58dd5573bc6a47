package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/vivekstills/boat/go/internal/campaign"
	"github.com/vivekstills/boat/go/internal/leaderboard"
	"github.com/vivekstills/boat/go/internal/models"
)

var errUnhealthy = errors.New("leaderboard sync unhealthy")

func runWatch(ctx context.Context, args []string, s streams) error {
	fs, path := newFlagSet("watch", s.err)
	showAll := fs.Bool("all", false, "show every runner-up instead of the top ten")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(*path)
	if err != nil {
		return err
	}
	svc, err := setupServices(cfg)
	if err != nil {
		return err
	}

	updates, unsubscribe := svc.Poller.Subscribe()
	defer unsubscribe()

	if err := svc.Poller.Start(ctx); err != nil {
		return fmt.Errorf("failed to start poller: %w", err)
	}
	defer func() {
		if err := svc.Poller.Stop(); err != nil {
			log.Error().Err(err).Msg("stop poller")
		}
	}()

	clock := clockwork.NewRealClock()
	ticker := clock.NewTicker(time.Second)
	defer ticker.Stop()

	keys := readKeys(ctx, s.in)
	state := svc.Poller.State()
	draw := func() {
		v := watchView{
			Campaign:   &cfg.Campaign,
			State:      state,
			Now:        clock.Now(),
			ShowAll:    *showAll,
			StaleAfter: 2 * cfg.Leaderboard.RefreshInterval,
		}
		if err := renderWatch(s.out, v); err != nil {
			log.Warn().Err(err).Msg("render failed")
		}
	}
	draw()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("shutdown signal received")
			return nil
		case next, ok := <-updates:
			if !ok {
				return nil
			}
			state = next
			draw()
		case <-ticker.Chan():
			draw()
		case key, ok := <-keys:
			if !ok {
				keys = nil
				continue
			}
			switch key {
			case "q":
				return nil
			case "a":
				*showAll = !*showAll
				draw()
			case "", "r":
				go func() {
					if !svc.Poller.RefreshNow(ctx) {
						log.Info().Msg("manual refresh skipped")
					}
				}()
			}
		}
	}
}

// readKeys forwards trimmed, lowercased input lines until EOF or ctx ends.
// A Scan blocked on a terminal cannot be interrupted, so after ctx ends the
// goroutine lingers until the next line or process exit and then returns
// without sending.
func readKeys(ctx context.Context, in io.Reader) <-chan string {
	keys := make(chan string)
	if in == nil {
		close(keys)
		return keys
	}

	go func() {
		defer close(keys)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case keys <- strings.ToLower(strings.TrimSpace(scanner.Text())):
			case <-ctx.Done():
				return
			}
		}
	}()
	return keys
}

func runOnce(ctx context.Context, args []string, s streams) error {
	fs, path := newFlagSet("once", s.err)
	strict := fs.Bool("strict", false, "fail instead of serving cached or default data")
	top := fs.Int("top", 0, "print only the first N players (0 for all)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(*path)
	if err != nil {
		return err
	}
	svc, err := setupServices(cfg)
	if err != nil {
		return err
	}

	var snap *models.Snapshot
	if *strict {
		snap, err = svc.App.Fetch(ctx)
		if err != nil {
			return fmt.Errorf("failed to fetch leaderboard: %w", err)
		}
	} else {
		snap = svc.App.GetLeaderboard(ctx)
	}

	out := *snap
	if *top > 0 {
		out.Players = snap.Top(*top)
	}

	enc := json.NewEncoder(s.out)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func runCountdown(ctx context.Context, args []string, s streams) error {
	fs, path := newFlagSet("countdown", s.err)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(*path)
	if err != nil {
		return err
	}

	left, err := cfg.Campaign.TimeLeft(time.Now())
	if err != nil {
		return err
	}
	if left.Done() {
		fmt.Fprintln(s.out, "campaign ended")
		return nil
	}
	fmt.Fprintln(s.out, left.String())
	return nil
}

func runRegion(ctx context.Context, args []string, s streams) error {
	fs, path := newFlagSet("region", s.err)
	name := fs.String("name", "GLOBAL", "static region to print")
	showAll := fs.Bool("all", false, "show every runner-up")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(*path)
	if err != nil {
		return err
	}

	snap, err := cfg.Campaign.StaticSnapshot(*name)
	if err != nil {
		return fmt.Errorf("%w (configured: %s)", err, strings.Join(cfg.Campaign.RegionNames(), ", "))
	}
	return renderBoard(s.out, snap.Players, *showAll)
}

func runCopyCode(ctx context.Context, args []string, s streams) error {
	fs, path := newFlagSet("copy-code", s.err)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(*path)
	if err != nil {
		return err
	}

	if err := cfg.Campaign.CopyReferralCode(campaign.SystemClipboard{}); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "copied referral code %s\n", cfg.Campaign.ReferralCode)
	return nil
}

func runStats(ctx context.Context, args []string, s streams) error {
	fs, path := newFlagSet("stats", s.err)
	refreshes := fs.Int("refreshes", 1, "number of cold refreshes to run before printing")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(*path)
	if err != nil {
		return err
	}
	svc, err := setupServices(cfg)
	if err != nil {
		return err
	}

	for i := 0; i < *refreshes; i++ {
		svc.App.InvalidateCache()
		snap := svc.App.GetLeaderboard(ctx)
		log.Info().
			Int("refresh", i+1).
			Str("source", string(snap.Source)).
			Int("players", snap.Len()).
			Msg("leaderboard refreshed")
	}

	return svc.Metrics.Export(s.out)
}

func runHealth(ctx context.Context, args []string, s streams) error {
	fs, path := newFlagSet("health", s.err)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(*path)
	if err != nil {
		return err
	}
	svc, err := setupServices(cfg)
	if err != nil {
		return err
	}

	svc.App.GetLeaderboard(ctx)
	status := leaderboard.NewHealthChecker(svc.App, nil, 2*cfg.Leaderboard.RefreshInterval, nil).Check()

	enc := json.NewEncoder(s.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(status); err != nil {
		return err
	}
	if !status.Healthy {
		return errUnhealthy
	}
	return nil
}
