package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/divvly/divvly/internal/ledger"
	"github.com/divvly/divvly/internal/service"
)

// GroupHandler serves group creation and membership reads.
type GroupHandler struct {
	groupSvc *service.GroupService
}

// NewGroupHandler creates a new GroupHandler.
func NewGroupHandler(groupSvc *service.GroupService) *GroupHandler {
	return &GroupHandler{groupSvc: groupSvc}
}

// groupID parses the :id path parameter.
func groupID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 0 {
		badRequest(c, "invalid group id")
		return 0, false
	}
	return id, true
}

// Create handles POST /api/v1/groups. The authenticated caller must be
// among the members they are grouping.
func (h *GroupHandler) Create(c *gin.Context) {
	var req createGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	caller := CallerAddress(c)
	found := false
	for _, addr := range req.MemberAddresses {
		if addr == caller {
			found = true
			break
		}
	}
	if !found {
		respondError(c, ledger.ErrNotGroupMember)
		return
	}

	group, err := h.groupSvc.CreateGroup(c.Request.Context(), req.Name, req.Token, req.MemberNames, req.MemberAddresses)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toGroupResponse(group))
}

// List handles GET /api/v1/groups: the ids of the caller's groups.
func (h *GroupHandler) List(c *gin.Context) {
	ids, err := h.groupSvc.GroupsForMember(c.Request.Context(), CallerAddress(c))
	if err != nil {
		respondError(c, err)
		return
	}
	if ids == nil {
		ids = []int64{}
	}
	c.JSON(http.StatusOK, gin.H{"group_ids": ids})
}

// Get handles GET /api/v1/groups/:id.
func (h *GroupHandler) Get(c *gin.Context) {
	id, ok := groupID(c)
	if !ok {
		return
	}

	info, err := h.groupSvc.GroupInfo(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, groupInfoResponse{
		ID:          info.ID,
		Name:        info.Name,
		Token:       info.Token,
		MemberCount: info.MemberCount,
		BillCount:   info.BillCount,
	})
}

// Members handles GET /api/v1/groups/:id/members.
func (h *GroupHandler) Members(c *gin.Context) {
	id, ok := groupID(c)
	if !ok {
		return
	}

	group, err := h.groupSvc.GetGroup(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	members := make([]memberResponse, len(group.Members))
	for i, m := range group.Members {
		members[i] = memberResponse{Address: m.Address, Name: m.Name}
	}
	c.JSON(http.StatusOK, gin.H{"members": members})
}

// Member handles GET /api/v1/groups/:id/members/:index.
func (h *GroupHandler) Member(c *gin.Context) {
	id, ok := groupID(c)
	if !ok {
		return
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		badRequest(c, "invalid member index")
		return
	}

	member, err := h.groupSvc.Member(c.Request.Context(), id, index)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, memberResponse{Address: member.Address, Name: member.Name})
}
