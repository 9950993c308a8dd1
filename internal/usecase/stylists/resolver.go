// Package stylists подставляет имена мастеров в пары услуга-мастер
package stylists

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// StaffDirectory интерфейс справочника мастеров
type StaffDirectory interface {
	GetStylistNameWithGracefulDegradation(ctx context.Context, stylistID string) (string, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// Resolver заполняет StylistName для пар, где имя не передано клиентом
type Resolver struct {
	directory StaffDirectory
	logger    Logger
}

// NewResolver создает резолвер. directory может быть nil, тогда имена не подставляются.
func NewResolver(directory StaffDirectory, logger Logger) *Resolver {
	return &Resolver{directory: directory, logger: logger}
}

// Resolve возвращает копию пар с заполненными именами.
// Ошибки справочника не прерывают запись: в сообщениях останется id мастера.
func (r *Resolver) Resolve(ctx context.Context, pairs []domain.ServiceStylistPair) []domain.ServiceStylistPair {
	resolved := make([]domain.ServiceStylistPair, len(pairs))
	copy(resolved, pairs)

	if r == nil || r.directory == nil {
		return resolved
	}

	names := make(map[string]string)
	for i := range resolved {
		pair := &resolved[i]
		if pair.Assignment() != domain.StylistSpecific || pair.StylistName != nil {
			continue
		}

		name, ok := names[pair.StylistID]
		if !ok {
			var err error
			name, err = r.directory.GetStylistNameWithGracefulDegradation(ctx, pair.StylistID)
			if err != nil {
				r.logger.Warn("Resolve: stylist=%s name unavailable: %v", pair.StylistID, err)
			}
			names[pair.StylistID] = name
		}

		if name != "" {
			n := name
			pair.StylistName = &n
		}
	}

	return resolved
}
