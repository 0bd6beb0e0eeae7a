/*
Package app owns the application state and its command handlers.

PURPOSE:
  A single App struct holds the three collections (leaves, notifications,
  active session) behind one mutex, replacing the original's ambient
  globals. Every user action is a method that runs to completion: read
  state, decide, mutate, append notifications, persist. No two commands
  interleave partially.

COMMANDS:
  Login / Logout             session lifecycle
  ApplyLeave                 create a Pending request + submission notice
  Decide                     HOD or Principal approval-chain decision
  LeavesFor / PendingFor     role-scoped reads
  NotificationsFor           per-user messages, insertion order
  Summary                    admin-only aggregate counts

PERSISTENCE:
  Leave and notification collections are snapshotted to the blob store
  after every mutation; the session key is written at login and cleared
  at logout. Storage failures are logged and never surface to the caller;
  in-memory state stays authoritative.

SEE ALSO:
  - workflow: the pure state machine and visibility rules
  - persist.go: snapshot/load details
*/
package app

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/campus/leaveflow/ids"
	"github.com/campus/leaveflow/store"
	"github.com/campus/leaveflow/workflow"
)

// Config carries the App's injected dependencies. Store is required; the
// remaining fields default to production implementations.
type Config struct {
	Store       store.Blob
	IDs         ids.Generator
	Credentials CredentialTable
	Now         func() time.Time
}

// App is the process-wide application state. All three collections are owned
// exclusively here; views read snapshots and issue commands, never mutating
// entities directly.
type App struct {
	mu sync.Mutex

	blob  store.Blob
	ids   ids.Generator
	creds CredentialTable
	now   func() time.Time

	leaves        []workflow.LeaveRequest
	leaveIndex    map[string]int // id → position in leaves
	notifications []workflow.Notification
	session       *workflow.Identity
}

// New builds an App and restores any existing snapshots from cfg.Store.
// A snapshot that fails to decode is logged and skipped; the corresponding
// collection starts empty. Load failures are never fatal.
func New(cfg Config) *App {
	if cfg.IDs == nil {
		cfg.IDs = ids.NewULID()
	}
	if cfg.Credentials == nil {
		cfg.Credentials = DemoCredentials()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	a := &App{
		blob:       cfg.Store,
		ids:        cfg.IDs,
		creds:      cfg.Credentials,
		now:        cfg.Now,
		leaveIndex: make(map[string]int),
	}
	a.load(context.Background())
	return a
}

// =============================================================================
// SESSION COMMANDS
// =============================================================================

// Login validates credentials against the static table and makes the matched
// identity the active session. The session is persisted immediately.
func (a *App) Login(ctx context.Context, email, password string) (workflow.Identity, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	id, err := a.creds.Authenticate(email, password)
	if err != nil {
		return workflow.Identity{}, err
	}

	a.session = &id
	a.saveSession(ctx)
	return id, nil
}

// Logout clears the active session and erases the persisted session entry.
// Leave and notification collections are untouched.
func (a *App) Logout(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.session = nil
	a.clearSession(ctx)
}

// CurrentUser returns the active session identity, if any.
func (a *App) CurrentUser() (workflow.Identity, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.session == nil {
		return workflow.Identity{}, false
	}
	return *a.session, true
}

// =============================================================================
// LEAVE COMMANDS
// =============================================================================

// LeaveInput is the staff-supplied portion of a new leave request.
type LeaveInput struct {
	LeaveType workflow.LeaveType
	StartDate string // workflow.DateLayout
	EndDate   string // workflow.DateLayout
	Reason    string
}

func (in LeaveInput) validate() error {
	if !in.LeaveType.Valid() {
		return &workflow.ValidationError{Field: "leaveType", Detail: "unknown leave type"}
	}
	if strings.TrimSpace(in.Reason) == "" {
		return &workflow.ValidationError{Field: "reason", Detail: "must not be empty"}
	}
	start, err := time.Parse(workflow.DateLayout, in.StartDate)
	if err != nil {
		return &workflow.ValidationError{Field: "startDate", Detail: "expected YYYY-MM-DD"}
	}
	end, err := time.Parse(workflow.DateLayout, in.EndDate)
	if err != nil {
		return &workflow.ValidationError{Field: "endDate", Detail: "expected YYYY-MM-DD"}
	}
	if start.After(end) {
		return &workflow.ValidationError{Field: "startDate", Detail: "must not be after endDate"}
	}
	return nil
}

// ApplyLeave validates in and creates a Pending leave request on behalf of
// requester, appending one submission notification addressed to them.
func (a *App) ApplyLeave(ctx context.Context, requester workflow.Identity, in LeaveInput) (workflow.LeaveRequest, error) {
	if err := in.validate(); err != nil {
		return workflow.LeaveRequest{}, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	leave := workflow.LeaveRequest{
		ID:             a.ids.LeaveID(),
		RequesterEmail: requester.Email,
		RequesterName:  requester.DisplayName,
		Department:     requester.Department,
		LeaveType:      in.LeaveType,
		StartDate:      in.StartDate,
		EndDate:        in.EndDate,
		Reason:         in.Reason,
		Status:         workflow.StatusPending,
		AppliedAt:      a.now(),
	}

	a.leaveIndex[leave.ID] = len(a.leaves)
	a.leaves = append(a.leaves, leave)
	a.notify(requester.Email, workflow.SubmissionMessage(in.LeaveType), leave.ID)
	a.save(ctx)
	return leave, nil
}

// Decide runs one approval-chain decision by actor against leave id. The
// transition itself is evaluated by workflow.Decide; on success the leave is
// updated, the requester is notified, and both collections are snapshotted.
// On any error the state is unchanged.
func (a *App) Decide(ctx context.Context, actor workflow.Identity, id string, action workflow.Action, comments string) (workflow.LeaveRequest, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	idx, ok := a.leaveIndex[id]
	if !ok {
		return workflow.LeaveRequest{}, workflow.ErrNotFound
	}
	leave := &a.leaves[idx]

	// HOD decisions are department-scoped; a HOD cannot decide for another
	// department even when the status would allow it.
	if actor.Role == workflow.RoleHOD && leave.Department != actor.Department {
		return workflow.LeaveRequest{}, &workflow.TransitionError{
			LeaveID: leave.ID, Status: leave.Status, Actor: actor.Role, Action: action,
		}
	}

	d, err := workflow.Decide(leave, actor.Role, action, comments, a.now())
	if err != nil {
		return workflow.LeaveRequest{}, err
	}

	d.Apply(leave)
	a.notify(leave.RequesterEmail, d.Message, leave.ID)
	a.save(ctx)
	return *leave, nil
}

// LeavesFor returns the leaves visible to viewer in full-history scope,
// insertion order preserved.
func (a *App) LeavesFor(viewer workflow.Identity) []workflow.LeaveRequest {
	a.mu.Lock()
	defer a.mu.Unlock()
	return workflow.Filter(viewer, a.leaves, workflow.ScopeHistory)
}

// PendingFor returns the decision queue for viewer: Pending department leaves
// for a HOD, ApprovedByHOD leaves for the Principal.
func (a *App) PendingFor(viewer workflow.Identity) []workflow.LeaveRequest {
	a.mu.Lock()
	defer a.mu.Unlock()
	return workflow.Filter(viewer, a.leaves, workflow.ScopeQueue)
}

// =============================================================================
// NOTIFICATION READS
// =============================================================================

// NotificationsFor returns every notification addressed to email, in
// insertion order.
func (a *App) NotificationsFor(email string) []workflow.Notification {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.notificationsForLocked(email)
}

// RecentNotificationsFor returns at most limit notifications for email,
// newest first. Like every other read, the whole view is composed under the
// command lock.
func (a *App) RecentNotificationsFor(email string, limit int) []workflow.Notification {
	a.mu.Lock()
	defer a.mu.Unlock()

	all := a.notificationsForLocked(email)
	if len(all) > limit {
		all = all[len(all)-limit:]
	}
	for i, j := 0, len(all)-1; i < j; i, j = i+1, j-1 {
		all[i], all[j] = all[j], all[i]
	}
	return all
}

// notificationsForLocked copies email's notifications. Caller holds a.mu.
func (a *App) notificationsForLocked(email string) []workflow.Notification {
	var out []workflow.Notification
	for _, n := range a.notifications {
		if n.RecipientEmail == email {
			out = append(out, n)
		}
	}
	return out
}

// notify appends one notification. Caller holds a.mu.
func (a *App) notify(recipient, message, leaveID string) {
	a.notifications = append(a.notifications, workflow.Notification{
		ID:             a.ids.NotificationID(),
		RecipientEmail: recipient,
		Message:        message,
		RelatedLeaveID: leaveID,
		CreatedAt:      a.now(),
	})
}
