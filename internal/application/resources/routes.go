// Package resources declares the member and report screens: their
// validation schemas and the form and list configurations built on them.
package resources

import (
	"fmt"
	"net/url"
	"strconv"
)

// Screen routes.
const (
	RouteMemberForm = "/cadastrar-membro"
	RouteMemberList = "/visualizar-membros"
	RouteReportForm = "/cadastrar-relatorio"
	RouteReportList = "/visualizar-relatorios"
	RouteLogin      = "/login"
)

// EditRoute returns the form route for editing record id.
func EditRoute(formRoute string, id int64) string {
	return fmt.Sprintf("%s?%s", formRoute, url.Values{"id": {strconv.FormatInt(id, 10)}}.Encode())
}
