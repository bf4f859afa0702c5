package http

//go:generate mockgen -source=http.go -destination=mocks/http.go -package=mocks
