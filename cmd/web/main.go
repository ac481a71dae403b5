// APPTNU membership backend: institutional member registration, Midtrans
// checkout and webhook reconciliation, document issuance and WhatsApp
// notifications.
package main

import (
	"log"

	"apptnu_backend/internal/app"
)

func main() {
	if err := app.Run(); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}
