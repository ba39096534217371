// Package mocks holds gomock doubles for the storage interface.
//
// To regenerate after the interface changes, run:
//
//	go generate ./internal/mocks
package mocks

//go:generate go run go.uber.org/mock/mockgen -source=../../storage/store.go -destination=store_mock.go -package=mocks
