// Package board holds the mutable dispatch state for one scheduling day:
// three unordered trip queues plus the set of grid assignments. Every
// mutation keeps the placement invariant: a trip id lives in at most one
// queue or one grid assignment, never both.
package board

import (
	"sort"

	"github.com/mitchellh/hashstructure/v2"

	"github.com/julianstephens/tripboard/internal/geometry"
	"github.com/julianstephens/tripboard/internal/models"
	"github.com/julianstephens/tripboard/internal/timeutil"
)

// Partition is the board state for a single calendar date. It is not safe
// for concurrent use; a partition is owned by the single session that
// created it.
type Partition struct {
	day         models.DayDescriptor
	queues      map[models.QueueName][]models.Trip
	assignments []models.AssignedBlock
	vehicles    map[string]models.Vehicle
	vehicleList []models.Vehicle
}

// NewPartition seeds a partition from a day payload's queue lists. The
// payload itself is never mutated.
func NewPartition(payload models.DayPayload) *Partition {
	p := &Partition{
		day: payload.Day,
		queues: map[models.QueueName][]models.Trip{
			models.QueueIncoming:   append([]models.Trip(nil), payload.IncomingRequests...),
			models.QueueUnassigned: append([]models.Trip(nil), payload.UnassignedTrips...),
			models.QueueWillCall:   append([]models.Trip(nil), payload.WillCallTrips...),
		},
		vehicles:    make(map[string]models.Vehicle, len(payload.Vehicles)),
		vehicleList: models.SortVehiclesForGrid(payload.Vehicles),
	}
	for _, v := range payload.Vehicles {
		p.vehicles[v.VehicleID] = v
	}
	return p
}

func (p *Partition) Day() models.DayDescriptor { return p.day }

func (p *Partition) Vehicle(id string) (models.Vehicle, bool) {
	v, ok := p.vehicles[id]
	return v, ok
}

// Vehicles returns the vehicle columns in grid display order.
func (p *Partition) Vehicles() []models.Vehicle {
	return append([]models.Vehicle(nil), p.vehicleList...)
}

// MoveTripToQueue removes the trip from the grid and from every queue, then
// inserts it at the front of the target queue. Re-issuing with the same
// target changes nothing beyond ordering. Returns false for an unknown
// queue name (state untouched).
func (p *Partition) MoveTripToQueue(trip models.Trip, target models.QueueName) bool {
	if !target.Valid() {
		return false
	}

	p.removeEverywhere(trip.TripID)
	p.queues[target] = append([]models.Trip{trip}, p.queues[target]...)
	return true
}

// AssignTripToGrid pins the trip to a vehicle column at a slot-aligned
// offset, removing it from every queue. An existing assignment for the same
// trip id is replaced in place. Drops onto out-of-service or unknown
// vehicles are rejected with no state change.
func (p *Partition) AssignTripToGrid(trip models.Trip, vehicleID string, slotIndex, heightPx int) bool {
	v, ok := p.vehicles[vehicleID]
	if !ok || v.IsOutOfService {
		return false
	}

	block := models.AssignedBlock{
		Trip:      trip,
		VehicleID: vehicleID,
		SlotIndex: slotIndex,
		TopPx:     geometry.PixelFromSlotIndex(slotIndex),
		HeightPx:  heightPx,
	}

	p.removeFromQueues(trip.TripID)

	for i := range p.assignments {
		if p.assignments[i].Trip.TripID == trip.TripID {
			p.assignments[i] = block
			return true
		}
	}
	p.assignments = append(p.assignments, block)
	return true
}

func (p *Partition) removeEverywhere(tripID string) {
	p.removeFromQueues(tripID)

	kept := p.assignments[:0]
	for _, b := range p.assignments {
		if b.Trip.TripID != tripID {
			kept = append(kept, b)
		}
	}
	p.assignments = kept
}

func (p *Partition) removeFromQueues(tripID string) {
	for name, trips := range p.queues {
		kept := trips[:0]
		for _, t := range trips {
			if t.TripID != tripID {
				kept = append(kept, t)
			}
		}
		p.queues[name] = kept
	}
}

// QueueContents returns a queue's trips sorted by pickup time ascending for
// display. Storage order stays most-recently-queued first.
func (p *Partition) QueueContents(name models.QueueName) []models.Trip {
	trips := append([]models.Trip(nil), p.queues[name]...)
	sort.SliceStable(trips, func(i, j int) bool {
		return timeutil.ShortClock(trips[i].PickupTimeLocal) < timeutil.ShortClock(trips[j].PickupTimeLocal)
	})
	return trips
}

// RawQueue returns a queue's trips in storage order, most recently queued
// first.
func (p *Partition) RawQueue(name models.QueueName) []models.Trip {
	return append([]models.Trip(nil), p.queues[name]...)
}

func (p *Partition) AssignmentsForVehicle(vehicleID string) []models.AssignedBlock {
	var blocks []models.AssignedBlock
	for _, b := range p.assignments {
		if b.VehicleID == vehicleID {
			blocks = append(blocks, b)
		}
	}
	return blocks
}

func (p *Partition) Assignments() []models.AssignedBlock {
	return append([]models.AssignedBlock(nil), p.assignments...)
}

// Locate reports where a trip currently lives: a queue name, "grid", or
// false when the trip is not on the board.
func (p *Partition) Locate(tripID string) (string, bool) {
	for _, name := range models.AllQueues {
		for _, t := range p.queues[name] {
			if t.TripID == tripID {
				return string(name), true
			}
		}
	}
	for _, b := range p.assignments {
		if b.Trip.TripID == tripID {
			return "grid", true
		}
	}
	return "", false
}

type snapshot struct {
	Queues      map[string][]models.Trip
	Assignments []models.AssignedBlock
}

// Fingerprint hashes the full queue and assignment state. Two partitions
// with identical placements hash equal, which is how revisit-restores are
// verified.
func (p *Partition) Fingerprint() (uint64, error) {
	snap := snapshot{
		Queues:      make(map[string][]models.Trip, len(p.queues)),
		Assignments: p.assignments,
	}
	for name, trips := range p.queues {
		snap.Queues[string(name)] = trips
	}
	return hashstructure.Hash(snap, hashstructure.FormatV2, nil)
}
