package middleware

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/genspectrum/sourcewatch/internal/errs"
	"github.com/genspectrum/sourcewatch/internal/logger"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.UseTestMode()
	os.Exit(m.Run())
}

func TestUseMiddlewareChain_Order(t *testing.T) {
	var calls []string
	record := func(name string) MiddlewareFunc {
		return func(cmd *cobra.Command, args []string, next func(*cobra.Command, []string) error) error {
			calls = append(calls, name)
			return next(cmd, args)
		}
	}
	set := func(cmd *cobra.Command, args []string, next func(*cobra.Command, []string) error) error {
		cmd.SetContext(context.WithValue(cmd.Context(), CtxKeyConfig, "value"))
		return next(cmd, args)
	}

	var seen string
	factory := func() *cobra.Command {
		return &cobra.Command{
			Use: "x",
			PreRunE: func(*cobra.Command, []string) error {
				calls = append(calls, "own")
				return nil
			},
			RunE: func(cmd *cobra.Command, _ []string) error {
				v, err := Get[string](cmd, CtxKeyConfig)
				seen = v
				return err
			},
		}
	}

	cmd := UseMiddlewareChain(record("a"), set, record("b"))(factory)()
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.ExecuteContext(context.Background()))

	assert.Equal(t, []string{"a", "b", "own"}, calls)
	assert.Equal(t, "value", seen)
}

func TestUseMiddlewareChain_StopsOnError(t *testing.T) {
	boom := errors.New("boom")
	ran := false

	fail := func(*cobra.Command, []string, func(*cobra.Command, []string) error) error { return boom }
	factory := func() *cobra.Command {
		return &cobra.Command{Use: "x", RunE: func(*cobra.Command, []string) error {
			ran = true
			return nil
		}}
	}

	cmd := UseMiddlewareChain(fail)(factory)()
	cmd.SilenceErrors, cmd.SilenceUsage = true, true
	cmd.SetArgs([]string{})
	err := cmd.ExecuteContext(context.Background())

	assert.ErrorIs(t, err, boom)
	assert.False(t, ran)
}

func TestGet_WrongType(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.SetContext(context.WithValue(context.Background(), CtxKeyConfig, 42))

	_, err := Get[string](cmd, CtxKeyConfig)
	assert.Error(t, err)
}

func TestFlagComboError(t *testing.T) {
	assert.ErrorIs(t, FlagComboError(errs.QuietWithVerbose), ErrLogged)
}
