package model

type CreateGroupRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Location    string `json:"location"`
}

type CreateGroupResponse struct {
	Group Group `json:"group"`
}

type ToggleGroupMembershipRequest struct {
	GroupID string `json:"group_id"`
}

type ToggleGroupMembershipResponse struct {
	Joined bool `json:"joined"`
}

type GetGroupRequest struct {
	GroupID string `json:"group_id"`
}

type GetGroupResponse struct {
	Group Group `json:"group"`
}

type GetGroupsRequest struct {
	Q      string `json:"q"`
	Offset int    `json:"offset"`
	Limit  int    `json:"limit"`
}

type GetGroupsResponse struct {
	Groups []Group `json:"groups"`
}

type GetMyGroupsRequest struct{}

type GetMyGroupsResponse struct {
	Groups []Group `json:"groups"`
}

type GetGroupMembersRequest struct {
	GroupID string `json:"group_id"`
}

type GetGroupMembersResponse struct {
	Users []ShortUser `json:"users"`
}
