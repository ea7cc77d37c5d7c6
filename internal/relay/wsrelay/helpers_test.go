package wsrelay_test

import (
	"context"

	"github.com/KirkDiggler/saves-helper/internal/relay"
	"github.com/KirkDiggler/saves-helper/internal/world"
)

var (
	gmUser     = &world.User{ID: "gm", Role: world.RoleGamemaster}
	playerUser = &world.User{ID: "player", Role: world.RolePlayer}
)

type receiverFunc struct {
	onRolled  func(*relay.SaveRolled)
	onApplied func(*relay.UpdateApplied)
}

func (r *receiverFunc) HandleSaveRolled(_ context.Context, msg *relay.SaveRolled) error {
	if r.onRolled != nil {
		r.onRolled(msg)
	}
	return nil
}

func (r *receiverFunc) HandleUpdateApplied(_ context.Context, msg *relay.UpdateApplied) error {
	if r.onApplied != nil {
		r.onApplied(msg)
	}
	return nil
}
