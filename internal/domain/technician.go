package domain

import "fmt"

// Field technician aggregate holding the stops assigned for one day.
// Start is the technician's depot or first known location.
type Technician struct {
	TechnicianID int
	Capacity     int
	Start        *Coordinate
	Stops        []Stop
}

func NewTechnician(id int, capacity int, start *Coordinate) *Technician {
	return &Technician{
		TechnicianID: id,
		Capacity:     capacity,
		Start:        start,
	}
}

// Assign a single stop to the technician's day.
func (t *Technician) Assign(stop Stop) error {
	if len(t.Stops) >= t.Capacity {
		return fmt.Errorf("assign stop: technician %d is at full capacity (capacity=%d)", t.TechnicianID, t.Capacity)
	}
	t.Stops = append(t.Stops, stop)
	return nil
}

// Assign multiple stops in order.
func (t *Technician) AssignMultiple(stops []Stop) error {
	for _, s := range stops {
		if err := t.Assign(s); err != nil {
			return err
		}
	}

	return nil
}

// Remove all assigned stops.
func (t *Technician) Clear() {
	t.Stops = nil
}
