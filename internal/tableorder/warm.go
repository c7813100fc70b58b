package tableorder

import (
	"context"

	"github.com/aquamarinepk/aqm"
)

// WarmSessionFunc returns the startup hook that restores the persisted table
// identity and menu snapshot into the session before the HTTP surface
// accepts traffic. Without a stored identity only the set-table intent is
// usable and nothing is loaded.
func WarmSessionFunc(sess *Session, identity *IdentityStore, cache *MenuCache, logger aqm.Logger) func(ctx context.Context) error {
	if logger == nil {
		logger = aqm.NewNoopLogger()
	}

	return func(ctx context.Context) error {
		table, err := identity.Get(ctx)
		if err != nil {
			logger.Error("cannot read stored table identity", "error", err)
			return nil
		}
		if table == "" {
			logger.Info("no stored table identity, waiting for set-table")
			return nil
		}

		sess.SetTable(table)
		if !sess.BeginMenuLoad() {
			return nil
		}

		items, err := cache.Load(ctx)
		if err != nil {
			logger.Error("menu load failed during warm-up", "error", err)
			sess.SetError("Could not load the menu. Check the connection to the server.")
			sess.FinishMenuLoad(nil)
			return nil
		}

		sess.FinishMenuLoad(items)
		logger.Info("session warmed", "table", table, "items", len(items))
		return nil
	}
}
