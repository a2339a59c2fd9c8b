package appointments

import (
	"context"
	"sort"
	"time"
)

// Group es la vista consolidada de una visita multi-pet. Es derivada: se
// recalcula en cada lectura, nunca se persiste ni se reparte como descuento
// entre las filas.
type Group struct {
	Signature string
	MemberIDs []int64 // ascendente; el primero es el anchor
	AnchorID  int64
	PetNames  []string
	Total     float64
	ClientID  int64
	Date      time.Time
	Time      string
}

// FindGroup reconstruye la visita multi-pet a la que pertenece un
// atendimiento, puramente desde atributos guardados: mismo cliente, misma
// fecha y hora, misma firma de pets. Devuelve false cuando no hay grupo
// (menos de dos filas coincidentes).
//
// Solo el anchor (el id numéricamente menor) puede llevar la acción de
// cobro consolidado; los demás miembros la suprimen para no cobrar doble.
func (s *Service) FindGroup(ctx context.Context, appointmentID int64) (Group, bool, error) {
	target, err := s.repo.GetByID(ctx, appointmentID)
	if err != nil {
		return Group{}, false, err
	}

	// Sin set multi-pet no hay visita compartida que reconstruir.
	if len(target.PetIDs) < 2 {
		return Group{}, false, nil
	}
	sig := target.Signature()

	candidates, err := s.repo.ListByVisit(ctx, target.ClientID, target.Date, target.Time)
	if err != nil {
		return Group{}, false, err
	}

	members := make([]Appointment, 0, len(candidates))
	for _, c := range candidates {
		if c.Signature() == sig {
			members = append(members, c)
		}
	}

	// Un match solitario es un falso positivo, no un grupo.
	if len(members) < 2 {
		return Group{}, false, nil
	}

	sort.Slice(members, func(i, j int) bool { return members[i].ID < members[j].ID })

	g := Group{
		Signature: sig,
		ClientID:  target.ClientID,
		Date:      target.Date,
		Time:      target.Time,
	}
	seen := make(map[string]struct{})
	for _, m := range members {
		g.MemberIDs = append(g.MemberIDs, m.ID)
		g.Total += m.TotalValue

		p, err := s.pets.GetByID(ctx, m.PrimaryPetID())
		if err != nil {
			continue // pet borrado: el grupo sigue valiendo, solo falta el nombre
		}
		if _, dup := seen[p.Name]; dup {
			continue
		}
		seen[p.Name] = struct{}{}
		g.PetNames = append(g.PetNames, p.Name)
	}
	g.AnchorID = g.MemberIDs[0]

	return g, true, nil
}
