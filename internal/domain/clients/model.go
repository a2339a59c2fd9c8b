package clients

import "time"

// Client es el dueño de uno o más pets. Referenciado por atendimientos,
// assinaturas y por las filas del libro financiero; el motor nunca lo borra
// mientras existan movimientos abiertos (eso es responsabilidad del caller).
type Client struct {
	ID int64

	Name    string
	Phone   string
	Email   string
	Address string

	Notes string

	CreatedAt time.Time
	UpdatedAt time.Time
}
