package auth

import "context"

// AuthVerifier verifica un token del portal de staff y devuelve claims o error.
// La emisión/renovación de tokens vive fuera de este servicio.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}
