package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/careerpath/internal/client"
	"github.com/jonathan/careerpath/internal/events"
	"github.com/jonathan/careerpath/internal/matching"
	"github.com/jonathan/careerpath/internal/onboarding"
	"github.com/jonathan/careerpath/internal/profile"
	"github.com/jonathan/careerpath/internal/state"
	"github.com/jonathan/careerpath/internal/storage"
	"github.com/jonathan/careerpath/internal/tui"
)

var onboardCmd = &cobra.Command{
	Use:   "onboard",
	Short: "Take the interest quiz",
	Long: `Pick the areas that interest you, review matching careers and save the result.
Signed-in users (api.token set) save to the server; guests keep the result on this
device until they register.`,
	RunE: runOnboard,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	RunE:  runWhoami,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and clear the stored user",
	RunE:  runLogout,
}

func init() {
	rootCmd.AddCommand(onboardCmd, whoamiCmd, logoutCmd)
}

// session wires the device store, backend client and profile widget together.
type session struct {
	store  *state.Store
	api    *client.API
	bus    *events.Bus
	widget *profile.Widget
	close  func()
}

func openSession(ctx context.Context, a *app) (*session, error) {
	var port storage.Port = storage.NewMemory()
	closePort := func() {}
	if a.cfg.Store.Path != "" {
		sq, err := storage.OpenSQLite(ctx, a.cfg.Store.Path)
		if err != nil {
			return nil, err
		}
		port = sq
		closePort = func() {
			if err := sq.Close(); err != nil {
				a.logger.Warn("failed to close store", zap.Error(err))
			}
		}
	}

	store := state.New(port, state.WithLogger(a.logger))
	api := client.New(a.cfg.API.BaseURL, a.logger)
	api.Token = a.cfg.API.Token
	bus := events.NewBus()
	widget := profile.NewWidget(api, store, bus, a.logger)

	// Without a token nobody can be signed in; skip the round trip.
	if api.Token != "" {
		widget.Refresh(ctx)
	}
	var serr error
	if u := widget.User(); u != nil {
		serr = store.SetUser(ctx, u)
	} else {
		serr = store.ClearUser(ctx)
	}
	if serr != nil {
		a.logger.Warn("failed to sync stored user", zap.Error(serr))
	}

	return &session{
		store:  store,
		api:    api,
		bus:    bus,
		widget: widget,
		close: func() {
			widget.Close()
			closePort()
		},
	}, nil
}

func runOnboard(cmd *cobra.Command, _ []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	s, err := openSession(ctx, a)
	if err != nil {
		return err
	}
	defer s.close()

	flow := onboarding.New(onboarding.Deps{
		Scorer:    matching.NewScorer(a.catalog.Careers()),
		Interests: a.catalog.Interests(),
		Session:   s.store,
		Persister: s.api,
		Staging:   s.store,
		Bus:       s.bus,
		Logger:    a.logger,
	})
	flow.Start(ctx)

	out, err := tui.Run(ctx, flow)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if out.Err != nil {
		a.logger.Debug("onboarding finished with an error", zap.Error(out.Err))
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Next: %s\n", out.Destination)
	return nil
}

func runWhoami(cmd *cobra.Command, _ []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	s, err := openSession(cmd.Context(), a)
	if err != nil {
		return err
	}
	defer s.close()

	w := cmd.OutOrStdout()
	if s.widget.User() == nil {
		fmt.Fprintf(w, "%s Not signed in\n", profile.AnonymousGlyph)
		return nil
	}
	fmt.Fprintf(w, "[%s] %s\n", profile.Initials(s.widget.DisplayName()), s.widget.DisplayName())
	fmt.Fprintf(w, "    %s\n", s.widget.DisplayRole())
	return nil
}

func runLogout(cmd *cobra.Command, _ []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	s, err := openSession(cmd.Context(), a)
	if err != nil {
		return err
	}
	defer s.close()

	dest := s.widget.Logout(cmd.Context())
	fmt.Fprintf(cmd.OutOrStdout(), "Signed out. Next: %s\n", dest)
	return nil
}
