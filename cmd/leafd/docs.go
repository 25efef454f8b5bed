package main

// General API documentation for swaggo. Regenerate with `swag init -g cmd/leafd/docs.go -o docs`.
//
// @title           leafd API
// @version         1.0
// @description     Potato leaf disease classification over HTTP.
//
// @contact.name   leafd maintainers
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
