package middleware

import (
	"errors"
	"fmt"

	"github.com/genspectrum/sourcewatch/internal/errs"
	"github.com/genspectrum/sourcewatch/internal/logger"
	"github.com/spf13/cobra"
)

const CtxKeyConfig contextKey = "config"

type contextKey string

type CommandFactory func() *cobra.Command

type MiddlewareFunc func(cmd *cobra.Command, args []string, next func(cmd *cobra.Command, args []string) error) error

type MiddlewareChain func(factory CommandFactory) CommandFactory

// ErrLogged tells main the error was already reported to the user.
var ErrLogged = errors.New("already logged")

// UseMiddlewareChain runs middlewares in order as the command's PreRunE, then
// the command's own PreRunE if it has one. Values a middleware puts in the
// command context are visible to RunE.
func UseMiddlewareChain(middlewares ...MiddlewareFunc) MiddlewareChain {
	chain := append([]MiddlewareFunc(nil), middlewares...)

	return func(factory CommandFactory) CommandFactory {
		return func() *cobra.Command {
			cmd := factory()
			own := cmd.PreRunE

			var step func(i int, c *cobra.Command, a []string) error
			step = func(i int, c *cobra.Command, a []string) error {
				if i == len(chain) {
					if own != nil {
						return own(c, a)
					}
					return nil
				}
				return chain[i](c, a, func(nc *cobra.Command, na []string) error {
					return step(i+1, nc, na)
				})
			}

			cmd.PreRunE = func(c *cobra.Command, a []string) error {
				return step(0, c, a)
			}
			return cmd
		}
	}
}

// Get reads a value stored by a middleware.
func Get[T any](cmd *cobra.Command, key contextKey) (T, error) {
	var zero T

	ctx := cmd.Context()
	if ctx == nil {
		return zero, fmt.Errorf("command context is nil")
	}

	val, ok := ctx.Value(key).(T)
	if !ok {
		return zero, fmt.Errorf("context value %q missing or of type %T", key, ctx.Value(key))
	}
	return val, nil
}

// FlagComboError logs a usage message from the errs table and returns ErrLogged.
func FlagComboError(code errs.Code, a ...any) error {
	logger.LogError("%s", errs.Msg(code, a...))
	return ErrLogged
}
