// Package timerange filtra pedidos por fecha de creación relativa a "ahora".
// El filtro se recalcula en cada lectura con el now del llamador; nunca se cachea.
package timerange

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/ordersync-api/internal/domain"
	"github.com/jhoicas/ordersync-api/internal/domain/entity"
)

// Range rango de tiempo seleccionable.
type Range string

const (
	RangeToday  Range = "today"
	RangeWeek   Range = "week"
	RangeMonth  Range = "month"
	RangeYear   Range = "year"
	RangeAll    Range = "all"
	RangeCustom Range = "custom"
)

// DateLayout formato de las fechas de calendario de un rango custom.
const DateLayout = "2006-01-02"

const day = 24 * time.Hour

// Filter selección de rango. Start y End solo aplican a RangeCustom y son fechas YYYY-MM-DD.
type Filter struct {
	Range Range
	Start string
	End   string
}

// ParseRange valida el rango recibido (vacío = all).
func ParseRange(s string) (Range, error) {
	r := Range(strings.ToLower(strings.TrimSpace(s)))
	switch r {
	case "":
		return RangeAll, nil
	case RangeToday, RangeWeek, RangeMonth, RangeYear, RangeAll, RangeCustom:
		return r, nil
	}
	return "", fmt.Errorf("%w: rango %q", domain.ErrInvalidInput, s)
}

// Bounds devuelve el intervalo [from, to] del filtro. to cero significa sin límite superior.
// ok es false cuando el filtro no restringe nada (all, desconocido, o custom incompleto).
func Bounds(f Filter, now time.Time) (from, to time.Time, ok bool) {
	loc := now.Location()
	switch f.Range {
	case RangeToday:
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc), time.Time{}, true
	case RangeWeek:
		return now.Add(-7 * day), time.Time{}, true
	case RangeMonth:
		return now.Add(-30 * day), time.Time{}, true
	case RangeYear:
		return now.Add(-365 * day), time.Time{}, true
	case RangeCustom:
		if f.Start == "" || f.End == "" {
			return time.Time{}, time.Time{}, false
		}
		start, err := time.ParseInLocation(DateLayout, f.Start, loc)
		if err != nil {
			return time.Time{}, time.Time{}, false
		}
		end, err := time.ParseInLocation(DateLayout, f.End, loc)
		if err != nil {
			return time.Time{}, time.Time{}, false
		}
		endOfDay := time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, int(999*time.Millisecond), loc)
		return start, endOfDay, true
	}
	return time.Time{}, time.Time{}, false
}

// Contains indica si t cae dentro del filtro evaluado en now.
func Contains(f Filter, now, t time.Time) bool {
	from, to, ok := Bounds(f, now)
	if !ok {
		return true
	}
	if t.Before(from) {
		return false
	}
	return to.IsZero() || !t.After(to)
}

// Apply devuelve los pedidos (ya acotados a la empresa) que caen en el filtro, conservando el orden.
func Apply(orders []*entity.Order, f Filter, now time.Time) []*entity.Order {
	from, to, ok := Bounds(f, now)
	if !ok {
		return orders
	}
	out := make([]*entity.Order, 0, len(orders))
	for _, o := range orders {
		if o.CreatedAt.Before(from) {
			continue
		}
		if !to.IsZero() && o.CreatedAt.After(to) {
			continue
		}
		out = append(out, o)
	}
	return out
}
