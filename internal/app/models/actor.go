package models

// ActorKind names the variant of an Actor
type ActorKind string

const (
	ActorStudent   ActorKind = "student"
	ActorProfessor ActorKind = "professor"
	ActorGuest     ActorKind = "guest"
)

// Actor is the caller of a request. The set of implementations is closed:
// StudentActor, ProfessorActor and GuestActor.
type Actor interface {
	Kind() ActorKind
	Account() *User
	actor()
}

// StudentActor is an activated user with a student profile
type StudentActor struct {
	User    *User
	Student *Student
}

// ProfessorActor is an activated user with a professor profile
type ProfessorActor struct {
	User *User
	Prof *Prof
}

// GuestActor is an authenticated user without a usable role profile
type GuestActor struct {
	User *User
}

func (a *StudentActor) Kind() ActorKind   { return ActorStudent }
func (a *ProfessorActor) Kind() ActorKind { return ActorProfessor }
func (a *GuestActor) Kind() ActorKind     { return ActorGuest }

func (a *StudentActor) Account() *User   { return a.User }
func (a *ProfessorActor) Account() *User { return a.User }
func (a *GuestActor) Account() *User     { return a.User }

func (*StudentActor) actor()   {}
func (*ProfessorActor) actor() {}
func (*GuestActor) actor()     {}

// ResolveActor picks the variant for user. A student flag with a student
// profile wins over a professor flag with a professor profile; anything
// else is a guest.
func ResolveActor(user *User, student *Student, prof *Prof) Actor {
	switch {
	case user.IsStudent && student != nil:
		return &StudentActor{User: user, Student: student}
	case user.IsProf && prof != nil:
		return &ProfessorActor{User: user, Prof: prof}
	default:
		return &GuestActor{User: user}
	}
}

// ResolveActorAs prefers the kind variant when user holds that role and has
// its profile. Otherwise it falls back to ResolveActor.
func ResolveActorAs(kind ActorKind, user *User, student *Student, prof *Prof) Actor {
	switch {
	case kind == ActorProfessor && user.IsProf && prof != nil:
		return &ProfessorActor{User: user, Prof: prof}
	case kind == ActorStudent && user.IsStudent && student != nil:
		return &StudentActor{User: user, Student: student}
	default:
		return ResolveActor(user, student, prof)
	}
}
