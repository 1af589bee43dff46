package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/KingDaeWon/dw-web/internal/api/dto"
	"github.com/KingDaeWon/dw-web/internal/auth"
	"github.com/KingDaeWon/dw-web/internal/service"
)

// MembersHandler exposes member profile endpoints.
type MembersHandler struct {
	members *service.MemberService
}

// NewMembersHandler constructs handler.
func NewMembersHandler(memberService *service.MemberService) *MembersHandler {
	return &MembersHandler{members: memberService}
}

// Me handles GET /api/member/me for the authenticated member.
func (h *MembersHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	member, err := h.members.FindByID(c.UserContext(), principal.MemberID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": dto.NewMemberResponse(member),
	})
}

// ByName handles GET /api/member/:memberName.
func (h *MembersHandler) ByName(c *fiber.Ctx) error {
	memberName := c.Params("memberName")
	if memberName == "" {
		return fiber.NewError(http.StatusBadRequest, "memberName required")
	}

	member, err := h.members.FindByMemberName(c.UserContext(), memberName)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": dto.NewMemberResponse(member),
	})
}
