package shared

import "github.com/gofiber/fiber/v2"

// Actor is the authenticated caller of a request.
type Actor struct {
	ID   string
	Role string
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// CurrentActor reads the caller set by the auth middleware.
func CurrentActor(c *fiber.Ctx) Actor {
	id, _ := c.Locals(UserID).(string)
	role, _ := c.Locals(UserRole).(string)
	return Actor{ID: id, Role: role}
}
