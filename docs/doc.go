// Package docs provides generated OpenAPI documentation.
//
// Pokedex front end
//
//	@title			Pokedex
//	@version		1.0
//	@description	Paginated Pokémon list and detail pages over a collection API. HTML by default; send Accept: application/json for the page state.
//	@termsOfService	http://swagger.io/terms/
//
//	@contact.name	API Support
//	@contact.url	https://github.com/jackzampolin/pokedex
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host		localhost:3000
//	@BasePath	/
//
//	@schemes	http https
package docs

//go:generate swag init -g ../cmd/pokedex/serve.go -o ./swagger --parseDependency --parseInternal
