package handlers

import (
	"nepmartadmin/internal/remote"
	"nepmartadmin/internal/services"
	"nepmartadmin/internal/session"
)

type Deps struct {
	Auth     *AuthHandler
	Products *ProductHandler
	Orders   *OrderHandler
	Updates  *UpdateHandler
	Users    *UserHandler
}

func NewDeps(rc *remote.Client, guard *session.Guard) *Deps {
	return &Deps{
		Auth:     &AuthHandler{Guard: guard},
		Products: &ProductHandler{Catalog: services.NewCatalog(rc)},
		Orders:   &OrderHandler{Tracker: services.NewTracker(rc)},
		Updates:  &UpdateHandler{Feed: services.NewBroadcast(rc)},
		Users:    &UserHandler{Dir: services.NewDirectory(rc)},
	}
}
