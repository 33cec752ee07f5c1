package domain

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dagym-lab/backend/internal/model"
	"github.com/dagym-lab/backend/internal/repository"
	"github.com/dagym-lab/backend/pkg/testutil"
)

func newTestGroupDomain() GroupDomain {
	return NewGroupDomain(
		repository.NewGroupRepository(),
		repository.NewGroupMemberRepository(),
		repository.NewUserRepository(),
	)
}

func Test_groupDomain_Create(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixture(ctx)
	groupDomain := newTestGroupDomain()

	ctxUser2 := testutil.MockContextWithUserID(ctx, testutil.User2.ID)

	resp, err := groupDomain.Create(ctxUser2, &model.CreateGroupRequest{
		Name:     "Evening Yoga",
		Category: "yoga",
		Location: "Berlin",
	})
	require.NoError(t, err)
	require.Equal(t, testutil.User2.ID, resp.Group.CreatedBy.ID)

	// The creator is a member from the start.
	require.True(t, resp.Group.IsJoined)
	require.Equal(t, int64(1), resp.Group.Members)

	members, err := groupDomain.GetMembers(ctx, &model.GetGroupMembersRequest{
		GroupID: resp.Group.ID,
	})
	require.NoError(t, err)
	require.Len(t, members.Users, 1)
	require.Equal(t, testutil.User2.ID, members.Users[0].ID)

	_, err = groupDomain.Create(ctxUser2, &model.CreateGroupRequest{Name: ""})
	require.Equal(t, "Not allow empty group name", err.Error())
}

func Test_groupDomain_ToggleMembership(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixture(ctx)
	groupDomain := newTestGroupDomain()

	ctxUser2 := testutil.MockContextWithUserID(ctx, testutil.User2.ID)

	// First toggle joins.
	resp, err := groupDomain.ToggleMembership(ctxUser2, &model.ToggleGroupMembershipRequest{
		GroupID: testutil.Group1.ID,
	})
	require.NoError(t, err)
	require.True(t, resp.Joined)

	group, err := groupDomain.Get(ctxUser2, &model.GetGroupRequest{GroupID: testutil.Group1.ID})
	require.NoError(t, err)
	require.True(t, group.Group.IsJoined)
	require.Equal(t, int64(2), group.Group.Members)

	myGroups, err := groupDomain.GetMyList(ctxUser2, &model.GetMyGroupsRequest{})
	require.NoError(t, err)
	require.Len(t, myGroups.Groups, 1)

	// Second toggle leaves.
	resp, err = groupDomain.ToggleMembership(ctxUser2, &model.ToggleGroupMembershipRequest{
		GroupID: testutil.Group1.ID,
	})
	require.NoError(t, err)
	require.False(t, resp.Joined)

	myGroups, err = groupDomain.GetMyList(ctxUser2, &model.GetMyGroupsRequest{})
	require.NoError(t, err)
	require.Empty(t, myGroups.Groups)

	// The creator leaving does not delete the group.
	ctxUser1 := testutil.MockContextWithUserID(ctx, testutil.User1.ID)
	_, err = groupDomain.ToggleMembership(ctxUser1, &model.ToggleGroupMembershipRequest{
		GroupID: testutil.Group1.ID,
	})
	require.NoError(t, err)

	group, err = groupDomain.Get(ctx, &model.GetGroupRequest{GroupID: testutil.Group1.ID})
	require.NoError(t, err)
	require.Equal(t, int64(0), group.Group.Members)

	_, err = groupDomain.ToggleMembership(ctxUser2, &model.ToggleGroupMembershipRequest{
		GroupID: "not-exist",
	})
	require.Equal(t, "Not found group", err.Error())
}

func Test_groupDomain_GetList(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixture(ctx)
	groupDomain := newTestGroupDomain()

	ctxUser1 := testutil.MockContextWithUserID(ctx, testutil.User1.ID)
	_, err := groupDomain.Create(ctxUser1, &model.CreateGroupRequest{
		Name:     "Evening Yoga",
		Category: "yoga",
	})
	require.NoError(t, err)

	all, err := groupDomain.GetList(ctx, &model.GetGroupsRequest{})
	require.NoError(t, err)
	require.Len(t, all.Groups, 2)

	filtered, err := groupDomain.GetList(ctx, &model.GetGroupsRequest{Q: "yoga"})
	require.NoError(t, err)
	require.Len(t, filtered.Groups, 1)
	require.Equal(t, "Evening Yoga", filtered.Groups[0].Name)
}
