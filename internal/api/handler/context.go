package handler

import "github.com/labstack/echo/v4"

// ctxUsername extracts the authenticated username injected by the Session
// middleware. Empty means the request is anonymous; routes that must not be
// anonymous are wrapped in middleware.RequireSession before reaching a
// handler.
func ctxUsername(c echo.Context) string {
	username, _ := c.Get("username").(string)
	return username
}
