// Package router wires handlers and middleware into the HTTP route tree.
package router

import (
	"github.com/go-chi/chi/v5"

	"github.com/cosmostic/cosmostic-server/internal/api/http/handler"
	"github.com/cosmostic/cosmostic-server/internal/api/http/middleware"
)

// New builds the route tree. Catalog reads and equip-state reads are public;
// catalog administration and equip-state mutations sit behind bearer token
// authentication.
func New(
	fetch *handler.Fetch,
	manage *handler.Manage,
	user *handler.User,
	authenticate *middleware.Authenticate,
	logging *middleware.Logging,
) *chi.Mux {
	r := chi.NewRouter()
	r.Use(logging.Handle)

	r.Route("/fetch", func(r chi.Router) {
		r.Get("/capes", fetch.ListCapes)
		r.Get("/cape/{capeUUID}", fetch.GetCape)
		r.Get("/cape/{capeUUID}/texture", fetch.GetCapeTexture)
		r.Get("/cape/{capeUUID}/preview", fetch.GetCapePreview)

		r.Get("/accessories", fetch.ListAccessories)
		r.Get("/accessory/{accessoryUUID}", fetch.GetAccessory)
		r.Get("/accessory/{accessoryUUID}/texture", fetch.GetAccessoryTexture)
		r.Get("/accessory/{accessoryUUID}/preview", fetch.GetAccessoryPreview)
		r.Get("/accessory/{accessoryUUID}/model", fetch.GetAccessoryModel)
	})

	r.Route("/manage", func(r chi.Router) {
		r.Use(authenticate.Handle)

		r.Post("/cape", manage.CreateCape)
		r.Put("/cape", manage.UpdateCape)
		r.Delete("/cape", manage.DeleteCape)

		r.Post("/accessory", manage.CreateAccessory)
		r.Put("/accessory", manage.UpdateAccessory)
		r.Delete("/accessory", manage.DeleteAccessory)
	})

	r.Route("/user/{userUUID}", func(r chi.Router) {
		r.Get("/cape", user.GetCape)
		r.Get("/accessories", user.GetAccessories)

		r.Group(func(r chi.Router) {
			r.Use(authenticate.Handle)

			r.Put("/cape", user.SetCape)
			r.Delete("/cape", user.ClearCape)
			r.Post("/accessories", user.AddAccessory)
			r.Delete("/accessories", user.RemoveAccessory)
		})
	})

	return r
}
