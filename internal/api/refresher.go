package api

import (
	"context"
	"log"
)

// Refresher to subskrybent rejestru cache: po każdym unieważnieniu taga
// od razu pobiera zasób ponownie, żeby kolejny widok dostał świeże dane
// bez czekania na sieć.
type Refresher struct {
	client *CachedClient
}

// NewRefresher tworzy odświeżacz dla klienta z cache
func NewRefresher(client *CachedClient) *Refresher {
	return &Refresher{client: client}
}

// Run nasłuchuje unieważnień listy książek i raportu aż do odwołania kontekstu.
// Błędy odświeżania są tylko logowane - następny widok i tak pobierze dane sam.
func (r *Refresher) Run(ctx context.Context) {
	booksCh, cancelBooks := r.client.Store().Subscribe(TagBooks)
	defer cancelBooks()
	summaryCh, cancelSummary := r.client.Store().Subscribe(TagBorrowSummary)
	defer cancelSummary()

	for {
		select {
		case <-ctx.Done():
			return
		case <-booksCh:
			if _, err := r.client.ListBooks(ctx); err != nil {
				log.Printf("Błąd odświeżania listy książek: %v", err)
			}
		case <-summaryCh:
			if _, err := r.client.GetBorrowSummary(ctx); err != nil {
				log.Printf("Błąd odświeżania podsumowania: %v", err)
			}
		}
	}
}
