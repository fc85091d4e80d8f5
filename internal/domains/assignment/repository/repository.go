package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=./mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"turndown/infras/otel"
	"turndown/internal/domains/assignment/model"
	cleanerModel "turndown/internal/domains/cleaner/model"
	historyModel "turndown/internal/domains/history/model"
	roomModel "turndown/internal/domains/room/model"
	"turndown/internal/store"
	"turndown/shared/constant"
	"turndown/shared/failure"
	"turndown/shared/timezone"
)

type Assignment interface {
	Propose(ctx context.Context, roomNumber, cleanerID string) (model.Proposal, error)
	Confirm(ctx context.Context, roomNumber string, accept bool) (roomModel.Room, []cleanerModel.Cleaner, error)
	GetSession(ctx context.Context, cleanerID string) (model.Session, map[string]roomModel.Room, error)
	Select(ctx context.Context, cleanerID string, roomNumbers []string) (model.Session, error)
	Deselect(ctx context.Context, cleanerID, roomNumber string) (model.Session, error)
	Proceed(ctx context.Context, cleanerID string) (model.Session, map[string]roomModel.Room, error)
	Abandon(ctx context.Context, cleanerID, cleanerName, roomNumber, note string) (model.Message, error)
	Finish(ctx context.Context, cleanerID, cleanerName, roomNumber string) (historyModel.CleaningRecord, error)
	GetMessages(ctx context.Context) ([]model.Message, map[string]roomModel.Status, error)
}

type repositoryImpl struct {
	store *store.Store
	otel  otel.Otel
}

func New(st *store.Store, otel otel.Otel) Assignment {
	return &repositoryImpl{
		store: st,
		otel:  otel,
	}
}

// Propose parks a manager-initiated assignment on the room until the cleaner
// answers. Rooms in checkout get a fresh assignment; rooms already assigned
// or mid-clean get a reassignment to the new cleaner. The room's status is
// captured so a later confirm can detect that the room moved underneath the
// proposal.
func (r *repositoryImpl) Propose(ctx context.Context, roomNumber, cleanerID string) (proposal model.Proposal, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".Propose")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = r.store.Update(ctx, func(state *store.State) error {
		room, ok := state.Rooms[roomNumber]
		if !ok {
			return failure.NotFound("room not found")
		}

		cleaner, ok := state.Cleaners[cleanerID]
		if !ok || !cleaner.Active {
			return failure.NotFound("cleaner not found")
		}

		if room.Status == roomModel.StatusAvailable {
			return failure.PreconditionFailed(fmt.Sprintf("room %s does not need cleaning", roomNumber))
		}

		if room.AssignedCleaner == cleanerID {
			return failure.PreconditionFailed("cleaner already holds this room")
		}

		if _, pending := state.Proposals[roomNumber]; pending {
			return failure.PreconditionFailed("room already has a pending proposal")
		}

		if state.LastRejected[roomNumber] == cleanerID {
			return failure.PreconditionFailed("cleaner already rejected this room, pick another")
		}

		proposal = model.Proposal{
			RoomNumber: roomNumber,
			CleanerID:  cleanerID,
			RoomStatus: room.Status,
			ProposedAt: timezone.Now(),
		}
		state.Proposals[roomNumber] = proposal

		return nil
	})

	return proposal, err
}

// Confirm resolves a pending proposal with the cleaner's answer. A checkout
// room moves to assigned; an assigned or in-cleaning room keeps its status
// and is re-pointed at the new cleaner. When the room's status no longer
// matches what the proposal saw, the proposal is dropped and the caller gets
// a state conflict: another write won the race.
func (r *repositoryImpl) Confirm(ctx context.Context, roomNumber string, accept bool) (room roomModel.Room, alternates []cleanerModel.Cleaner, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".Confirm")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = r.store.Update(ctx, func(state *store.State) error {
		proposal, ok := state.Proposals[roomNumber]
		if !ok {
			return failure.NotFound("no pending proposal for this room")
		}

		target, ok := state.Rooms[roomNumber]
		if !ok {
			return failure.NotFound("room not found")
		}

		if target.Status != proposal.RoomStatus {
			delete(state.Proposals, roomNumber)

			return failure.StateConflict("room status changed since the proposal was made")
		}

		delete(state.Proposals, roomNumber)

		if accept {
			if proposal.RoomStatus == roomModel.StatusCheckout {
				target.Status = roomModel.StatusAssigned
				target.AssignedCleaner = proposal.CleanerID
			} else {
				reassign(state, target, proposal.CleanerID)
			}

			delete(state.LastRejected, roomNumber)
			state.RecordRoomHistory(proposal.CleanerID, roomNumber, historyModel.AssignedByManager, timezone.Now())
		} else {
			state.LastRejected[roomNumber] = proposal.CleanerID
			alternates = state.ActiveCleaners(proposal.CleanerID)
		}

		room = target.Clone()

		return nil
	})

	return room, alternates, err
}

// reassign re-points an already-claimed room at a new cleaner without
// touching its status. A room mid-clean carries its in-progress bookkeeping
// over: it leaves the previous cleaner's session and joins the new one, and
// the room's running timer is preserved.
func reassign(state *store.State, room *roomModel.Room, cleanerID string) {
	previous := room.AssignedCleaner
	room.AssignedCleaner = cleanerID

	if previous != "" && previous != cleanerID {
		if session, ok := state.Sessions[previous]; ok && session.HasRoom(room.Number) {
			session.RemoveRoom(room.Number)

			if len(session.Rooms) == 0 {
				delete(state.Sessions, previous)
			}
		}
	}

	if room.Status != roomModel.StatusInCleaning {
		return
	}

	session, ok := state.Sessions[cleanerID]
	if !ok {
		session = &model.Session{CleanerID: cleanerID}
		state.Sessions[cleanerID] = session
	}

	if !session.HasRoom(room.Number) {
		session.Rooms = append(session.Rooms, room.Number)
	}

	if session.StartedAt == nil && room.SessionStart != nil {
		start := *room.SessionStart
		session.StartedAt = &start
	}
}

func (r *repositoryImpl) GetSession(ctx context.Context, cleanerID string) (session model.Session, rooms map[string]roomModel.Room, err error) {
	_, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".GetSession")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = r.store.View(func(state *store.State) error {
		session = model.Session{CleanerID: cleanerID}

		if found, ok := state.Sessions[cleanerID]; ok {
			session = *found
			session.Rooms = append([]string(nil), found.Rooms...)
		}

		rooms = cloneSessionRooms(state, session)

		return nil
	})

	return session, rooms, err
}

// Select adds rooms to the cleaner's working set. The batch is
// all-or-nothing: one ineligible room rejects the whole request with no
// partial pick-up.
func (r *repositoryImpl) Select(ctx context.Context, cleanerID string, roomNumbers []string) (session model.Session, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".Select")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = r.store.Update(ctx, func(state *store.State) error {
		for _, number := range roomNumbers {
			room, ok := state.Rooms[number]
			if !ok {
				return failure.NotFound(fmt.Sprintf("room %s not found", number))
			}

			if err := selectable(state, *room, cleanerID); err != nil {
				return err
			}
		}

		current, ok := state.Sessions[cleanerID]
		if !ok {
			current = &model.Session{CleanerID: cleanerID}
			state.Sessions[cleanerID] = current
		}

		for _, number := range roomNumbers {
			if !current.HasRoom(number) {
				current.Rooms = append(current.Rooms, number)
			}
		}

		session = *current
		session.Rooms = append([]string(nil), current.Rooms...)

		return nil
	})

	return session, err
}

func selectable(state *store.State, room roomModel.Room, cleanerID string) error {
	switch room.Status {
	case roomModel.StatusCheckout:
	case roomModel.StatusAssigned:
		if room.AssignedCleaner != cleanerID {
			return failure.PreconditionFailed(fmt.Sprintf("room %s is assigned to another cleaner", room.Number))
		}
	default:
		return failure.PreconditionFailed(fmt.Sprintf("room %s is not available for cleaning", room.Number))
	}

	for otherID, other := range state.Sessions {
		if otherID != cleanerID && other.HasRoom(room.Number) {
			return failure.PreconditionFailed(fmt.Sprintf("room %s is already selected by another cleaner", room.Number))
		}
	}

	return nil
}

// Deselect drops a room picked up by mistake. The selection is a set, so
// dropping a room that is not selected is a no-op. Only rooms the cleaner has
// not proceeded on can be dropped; a running clean goes through Abandon.
func (r *repositoryImpl) Deselect(ctx context.Context, cleanerID, roomNumber string) (session model.Session, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".Deselect")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = r.store.Update(ctx, func(state *store.State) error {
		current, ok := state.Sessions[cleanerID]
		if !ok {
			session = model.Session{CleanerID: cleanerID}

			return nil
		}

		if !current.HasRoom(roomNumber) {
			session = *current
			session.Rooms = append([]string(nil), current.Rooms...)

			return nil
		}

		if room, ok := state.Rooms[roomNumber]; ok && room.Status == roomModel.StatusInCleaning {
			return failure.PreconditionFailed("cleaning already started, abandon the room instead")
		}

		current.RemoveRoom(roomNumber)

		if len(current.Rooms) == 0 && current.StartedAt == nil {
			delete(state.Sessions, cleanerID)
		}

		session = *current
		session.Rooms = append([]string(nil), current.Rooms...)

		return nil
	})

	return session, err
}

// Proceed flips every selected room into cleaning in one critical section.
// All rooms share the same start timestamp and either all of them move or
// none do; a concurrent reader never sees a half-started batch.
func (r *repositoryImpl) Proceed(ctx context.Context, cleanerID string) (session model.Session, rooms map[string]roomModel.Room, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".Proceed")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = r.store.Update(ctx, func(state *store.State) error {
		current, ok := state.Sessions[cleanerID]
		if !ok || len(current.Rooms) == 0 {
			return failure.PreconditionFailed("no rooms selected")
		}

		for _, number := range current.Rooms {
			room, ok := state.Rooms[number]
			if !ok {
				return failure.NotFound(fmt.Sprintf("room %s not found", number))
			}

			if room.Status == roomModel.StatusInCleaning && room.AssignedCleaner == cleanerID {
				continue
			}

			if err := selectable(state, *room, cleanerID); err != nil {
				return failure.StateConflict(fmt.Sprintf("room %s changed since selection", number))
			}
		}

		now := timezone.Now()

		if current.StartedAt == nil {
			current.StartedAt = &now
		}

		for _, number := range current.Rooms {
			room := state.Rooms[number]
			if room.Status == roomModel.StatusInCleaning {
				continue
			}

			assignedBy := historyModel.AssignedByHousekeeper
			if room.Status == roomModel.StatusAssigned {
				assignedBy = historyModel.AssignedByManager
			}

			room.Status = roomModel.StatusInCleaning
			room.AssignedCleaner = cleanerID
			start := now
			room.SessionStart = &start

			state.RecordRoomHistory(cleanerID, number, assignedBy, now)
		}

		session = *current
		session.Rooms = append([]string(nil), current.Rooms...)
		rooms = cloneSessionRooms(state, session)

		return nil
	})

	return session, rooms, err
}

// Abandon backs out of a running clean: the room returns to the queue with
// its partial checklist intact and an exception message records how long the
// cleaner was in the room.
func (r *repositoryImpl) Abandon(ctx context.Context, cleanerID, cleanerName, roomNumber, note string) (message model.Message, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".Abandon")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = r.store.Update(ctx, func(state *store.State) error {
		current, ok := state.Sessions[cleanerID]
		if !ok || !current.HasRoom(roomNumber) {
			return failure.NotFound("room is not in your selection")
		}

		room, ok := state.Rooms[roomNumber]
		if !ok {
			return failure.NotFound("room not found")
		}

		if room.Status != roomModel.StatusInCleaning || room.AssignedCleaner != cleanerID {
			return failure.PreconditionFailed("room is not being cleaned by you")
		}

		now := timezone.Now()

		var timeSpent int64
		if room.SessionStart != nil {
			timeSpent = int64(now.Sub(*room.SessionStart).Seconds())
		}

		room.Status = roomModel.StatusCheckout
		room.AssignedCleaner = ""
		room.SessionStart = nil

		current.RemoveRoom(roomNumber)
		if len(current.Rooms) == 0 {
			delete(state.Sessions, cleanerID)
		}

		message = model.Message{
			ID:               uuid.New().String(),
			RoomNumber:       roomNumber,
			CleanerID:        cleanerID,
			CleanerName:      resolveCleanerName(state, cleanerID, cleanerName),
			TimeSpentSeconds: timeSpent,
			Note:             note,
			CreatedAt:        now,
		}
		state.Messages = append(state.Messages, message)

		return nil
	})

	return message, err
}

// Finish closes out a fully cleaned room: the checklist is snapshotted into
// an immutable cleaning record, the room becomes available with a fresh
// checklist, and the session ends once its last room is done.
func (r *repositoryImpl) Finish(ctx context.Context, cleanerID, cleanerName, roomNumber string) (record historyModel.CleaningRecord, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".Finish")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = r.store.Update(ctx, func(state *store.State) error {
		current, ok := state.Sessions[cleanerID]
		if !ok || !current.HasRoom(roomNumber) {
			return failure.NotFound("room is not in your selection")
		}

		room, ok := state.Rooms[roomNumber]
		if !ok {
			return failure.NotFound("room not found")
		}

		if room.Status != roomModel.StatusInCleaning || room.AssignedCleaner != cleanerID {
			return failure.PreconditionFailed("room is not being cleaned by you")
		}

		if !roomModel.FullyClean(*room, state.Catalog) {
			return failure.PreconditionFailed("checklist is not complete")
		}

		now := timezone.Now()
		startedAt := now
		if room.SessionStart != nil {
			startedAt = *room.SessionStart
		}

		record = historyModel.CleaningRecord{
			ID:              uuid.New().String(),
			RoomNumber:      room.Number,
			RoomType:        room.Type,
			Floor:           room.Floor,
			CleanerID:       cleanerID,
			CleanerName:     resolveCleanerName(state, cleanerID, cleanerName),
			CleaningDate:    timezone.Format(startedAt, constant.DateOnlyFormat),
			StartedAt:       startedAt,
			EndedAt:         now,
			DurationSeconds: int64(now.Sub(startedAt).Seconds()),
			CompletedTasks:  append([]roomModel.ChecklistItem(nil), room.Checklist...),
		}
		state.AppendCleaning(record)
		state.RecordRoomHistory(cleanerID, roomNumber, historyModel.AssignedByHousekeeper, now)

		room.Status = roomModel.StatusAvailable
		room.AssignedCleaner = ""
		room.SessionStart = nil
		room.Checklist = []roomModel.ChecklistItem{}

		current.RemoveRoom(roomNumber)
		if len(current.Rooms) == 0 {
			delete(state.Sessions, cleanerID)
		}

		return nil
	})

	return record, err
}

// GetMessages returns the exception channel oldest-first plus the current
// status of every referenced room, from which actionability is derived.
func (r *repositoryImpl) GetMessages(ctx context.Context) (messages []model.Message, statuses map[string]roomModel.Status, err error) {
	_, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".GetMessages")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = r.store.View(func(state *store.State) error {
		messages = append([]model.Message(nil), state.Messages...)
		statuses = make(map[string]roomModel.Status, len(messages))

		for _, message := range messages {
			if room, ok := state.Rooms[message.RoomNumber]; ok {
				statuses[message.RoomNumber] = room.Status
			}
		}

		return nil
	})

	return messages, statuses, err
}

func cloneSessionRooms(state *store.State, session model.Session) map[string]roomModel.Room {
	rooms := make(map[string]roomModel.Room, len(session.Rooms))

	for _, number := range session.Rooms {
		if room, ok := state.Rooms[number]; ok {
			rooms[number] = room.Clone()
		}
	}

	return rooms
}

func resolveCleanerName(state *store.State, cleanerID, fallback string) string {
	if cleaner, ok := state.Cleaners[cleanerID]; ok {
		return cleaner.Name
	}

	return fallback
}
