// Package group implements support group discovery and membership.
package group

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"juntos_server/internal/dao/mysql/repository"
	myredis "juntos_server/internal/dao/redis"
	"juntos_server/internal/dto/request"
	"juntos_server/internal/dto/respond"
	"juntos_server/internal/model"
	"juntos_server/internal/service/enrich"
	"juntos_server/pkg/constants"
	memberenum "juntos_server/pkg/enum/member"
	"juntos_server/pkg/errorx"

	"go.uber.org/zap"
)

const groupListKey = "group_list"

func groupMembersKey(groupID uint) string {
	return fmt.Sprintf("group_members_%d", groupID)
}

// membershipView is the in-memory index of who belongs to what. It is
// refreshed from the database on every membership read or write, so
// membership checks on hot paths never touch storage.
type membershipView struct {
	mu sync.RWMutex
	// byUser maps identity uuid to the set of group ids it belongs to.
	byUser map[string]map[uint]struct{}
}

func newMembershipView() *membershipView {
	return &membershipView{byUser: make(map[string]map[uint]struct{})}
}

// replace swaps the full group set of one identity.
func (v *membershipView) replace(userUuid string, groupIDs []uint) {
	set := make(map[uint]struct{}, len(groupIDs))
	for _, id := range groupIDs {
		set[id] = struct{}{}
	}
	v.mu.Lock()
	v.byUser[userUuid] = set
	v.mu.Unlock()
}

func (v *membershipView) add(userUuid string, groupID uint) {
	v.mu.Lock()
	set, ok := v.byUser[userUuid]
	if !ok {
		set = make(map[uint]struct{})
		v.byUser[userUuid] = set
	}
	set[groupID] = struct{}{}
	v.mu.Unlock()
}

func (v *membershipView) remove(userUuid string, groupID uint) {
	v.mu.Lock()
	if set, ok := v.byUser[userUuid]; ok {
		delete(set, groupID)
	}
	v.mu.Unlock()
}

func (v *membershipView) has(userUuid string, groupID uint) bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	set, ok := v.byUser[userUuid]
	if !ok {
		return false
	}
	_, member := set[groupID]
	return member
}

type groupService struct {
	repos *repository.Repositories
	cache myredis.AsyncCacheService
	view  *membershipView
}

// NewGroupService wires the group service with its collaborators.
func NewGroupService(repos *repository.Repositories, cache myredis.AsyncCacheService) *groupService {
	return &groupService{
		repos: repos,
		cache: cache,
		view:  newMembershipView(),
	}
}

func toGroupInfo(g model.Group) respond.GroupInfo {
	return respond.GroupInfo{
		ID:         g.ID,
		Nome:       g.Nome,
		Descricao:  g.Descricao,
		OwnerId:    g.OwnerId,
		ImagemCapa: g.ImagemCapa,
		MaxMembros: g.MaxMembros,
		CreatedAt:  g.CreatedAt,
	}
}

// ListAll returns every group, newest first, through a cache-aside read.
// A cache failure degrades to the database; the listing never fails on
// the cache alone.
func (g *groupService) ListAll() ([]respond.GroupInfo, error) {
	if cached, err := g.cache.Get(groupListKey); err == nil {
		var list []respond.GroupInfo
		if err := json.Unmarshal([]byte(cached), &list); err == nil {
			return list, nil
		}
	}

	groups, err := g.repos.Group.FindAllNewestFirst()
	if err != nil {
		zap.L().Error("list groups", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	list := make([]respond.GroupInfo, 0, len(groups))
	for _, grp := range groups {
		list = append(list, toGroupInfo(grp))
	}

	g.cache.SubmitTask(func(cache myredis.CacheService) {
		if data, err := json.Marshal(list); err == nil {
			_ = cache.Set(groupListKey, string(data), constants.REDIS_TIMEOUT*60)
		}
	})

	return list, nil
}

// ListMine returns the groups the identity belongs to and refreshes the
// membership view from the rows it read. An identity with no memberships
// short-circuits to an empty list without a group lookup.
func (g *groupService) ListMine(userUuid string) ([]respond.GroupInfo, error) {
	memberships, err := g.repos.GroupMember.FindByUserUuid(userUuid)
	if err != nil {
		zap.L().Error("list memberships", zap.String("user_uuid", userUuid), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	ids := make([]uint, 0, len(memberships))
	for _, m := range memberships {
		ids = append(ids, m.GroupID)
	}
	g.view.replace(userUuid, ids)

	if len(ids) == 0 {
		return []respond.GroupInfo{}, nil
	}

	groups, err := g.repos.Group.FindByIDs(ids)
	if err != nil {
		zap.L().Error("load joined groups", zap.String("user_uuid", userUuid), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].CreatedAt.After(groups[j].CreatedAt)
	})

	list := make([]respond.GroupInfo, 0, len(groups))
	for _, grp := range groups {
		list = append(list, toGroupInfo(grp))
	}
	return list, nil
}

// Create inserts the group and then enrolls the creator as its admin
// member. The two writes are independent: when the enrollment fails the
// group stands, the inconsistency is logged and the creator can recover
// with an ordinary Join.
func (g *groupService) Create(ownerUuid string, req request.CreateGroupRequest) (*respond.GroupInfo, error) {
	nome := strings.TrimSpace(req.Nome)
	descricao := strings.TrimSpace(req.Descricao)
	if nome == "" {
		return nil, errorx.New(errorx.CodeInvalidParam, "group name must not be blank")
	}
	if descricao == "" {
		return nil, errorx.New(errorx.CodeInvalidParam, "group description must not be blank")
	}

	maxMembers := req.MaxMembros
	if maxMembers == 0 {
		maxMembers = constants.DEFAULT_MAX_MEMBERS
	}
	group := model.Group{
		Nome:       nome,
		Descricao:  descricao,
		OwnerId:    ownerUuid,
		ImagemCapa: req.ImagemCapa,
		MaxMembros: maxMembers,
	}
	if err := g.repos.Group.Create(&group); err != nil {
		zap.L().Error("create group", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	member := model.GroupMember{
		GroupID:  group.ID,
		UserUuid: ownerUuid,
		Papel:    memberenum.Admin,
	}
	if err := g.repos.GroupMember.Create(&member); err != nil {
		zap.L().Warn("group created but owner enrollment failed",
			zap.Uint("group_id", group.ID),
			zap.String("owner_uuid", ownerUuid),
			zap.Error(err))
	} else {
		g.view.add(ownerUuid, group.ID)
	}

	g.invalidateListings(group.ID)

	info := toGroupInfo(group)
	return &info, nil
}

// Update edits group metadata. Only the owner may update.
func (g *groupService) Update(userUuid string, req request.UpdateGroupRequest) error {
	group, err := g.repos.Group.FindByID(req.GroupID)
	if err != nil {
		if errorx.IsNotFound(err) {
			return errorx.New(errorx.CodeNotFound, "group not found")
		}
		zap.L().Error("update group lookup", zap.Error(err))
		return errorx.ErrServerBusy
	}
	if group.OwnerId != userUuid {
		return errorx.ErrForbidden
	}

	if req.Nome != "" {
		group.Nome = req.Nome
	}
	if req.Descricao != "" {
		group.Descricao = req.Descricao
	}
	if req.ImagemCapa != "" {
		group.ImagemCapa = req.ImagemCapa
	}
	if req.MaxMembros != 0 {
		group.MaxMembros = req.MaxMembros
	}
	if err := g.repos.Group.Update(group); err != nil {
		zap.L().Error("update group", zap.Uint("group_id", group.ID), zap.Error(err))
		return errorx.ErrServerBusy
	}

	g.invalidateListings(group.ID)
	return nil
}

// Join enrolls the identity in the group. A duplicate enrollment is a
// success-equivalent outcome reported through AlreadyMember, never an
// error, so a retried join stays harmless.
func (g *groupService) Join(userUuid string, groupID uint) (*respond.JoinGroupRespond, error) {
	group, err := g.repos.Group.FindByID(groupID)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeNotFound, "group not found")
		}
		zap.L().Error("join group lookup", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	// An existing member re-joining is a soft outcome even when the
	// group is full, so the membership check runs before the capacity
	// gate.
	count, err := g.repos.GroupMember.CountByGroupAndUser(groupID, userUuid)
	if err != nil {
		zap.L().Error("join membership check", zap.Uint("group_id", groupID), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	if count > 0 {
		g.view.add(userUuid, groupID)
		return &respond.JoinGroupRespond{GroupID: groupID, AlreadyMember: true}, nil
	}

	members, err := g.repos.GroupMember.FindByGroupID(groupID)
	if err != nil {
		zap.L().Error("join member count", zap.Uint("group_id", groupID), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	if len(members) >= group.MaxMembros {
		return nil, errorx.New(errorx.CodeInvalidParam, "group is full")
	}

	member := model.GroupMember{
		GroupID:  groupID,
		UserUuid: userUuid,
		Papel:    memberenum.Member,
	}
	if err := g.repos.GroupMember.Create(&member); err != nil {
		if repository.IsDuplicateKey(err) {
			zap.L().Info("duplicate join downgraded to notice",
				zap.Uint("group_id", groupID), zap.String("user_uuid", userUuid))
			g.view.add(userUuid, groupID)
			return &respond.JoinGroupRespond{GroupID: groupID, AlreadyMember: true}, nil
		}
		zap.L().Error("join group", zap.Uint("group_id", groupID), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	g.view.add(userUuid, groupID)
	g.invalidateListings(groupID)
	return &respond.JoinGroupRespond{GroupID: groupID, AlreadyMember: false}, nil
}

// Leave removes the membership. Leaving a group the identity is not in
// is a no-op.
func (g *groupService) Leave(userUuid string, groupID uint) error {
	if err := g.repos.GroupMember.Delete(groupID, userUuid); err != nil {
		zap.L().Error("leave group", zap.Uint("group_id", groupID), zap.Error(err))
		return errorx.ErrServerBusy
	}
	g.view.remove(userUuid, groupID)
	g.invalidateListings(groupID)
	return nil
}

// IsMember answers from the in-memory view only. The view tracks every
// membership mutation and every ListMine refresh, so the answer is as
// fresh as the identity's last membership interaction.
func (g *groupService) IsMember(userUuid string, groupID uint) bool {
	return g.view.has(userUuid, groupID)
}

// ListMembers returns the membership rows of a group enriched with
// profiles. A membership whose profile cannot be resolved is still
// listed, with a nil profile.
func (g *groupService) ListMembers(groupID uint) ([]respond.GroupMemberInfo, error) {
	if cached, err := g.cache.Get(groupMembersKey(groupID)); err == nil {
		var list []respond.GroupMemberInfo
		if err := json.Unmarshal([]byte(cached), &list); err == nil {
			return list, nil
		}
	}

	members, err := g.repos.GroupMember.FindByGroupID(groupID)
	if err != nil {
		zap.L().Error("list members", zap.Uint("group_id", groupID), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	profiles, err := enrich.Lookup(members,
		func(m model.GroupMember) string { return m.UserUuid },
		g.repos.Profile.FindByUuids,
		func(p model.Profile) string { return p.Uuid },
	)
	if err != nil {
		zap.L().Error("enrich members", zap.Uint("group_id", groupID), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	list := make([]respond.GroupMemberInfo, 0, len(members))
	for _, m := range members {
		info := respond.GroupMemberInfo{
			UserUuid:    m.UserUuid,
			Papel:       m.Papel,
			DataEntrada: m.DataEntrada,
		}
		if p, ok := profiles[m.UserUuid]; ok {
			info.Profile = &respond.ProfileInfo{
				Uuid:        p.Uuid,
				Nome:        p.Nome,
				Email:       p.Email,
				TipoUsuario: p.TipoUsuario,
			}
		}
		list = append(list, info)
	}

	g.cache.SubmitTask(func(cache myredis.CacheService) {
		if data, err := json.Marshal(list); err == nil {
			_ = cache.Set(groupMembersKey(groupID), string(data), constants.REDIS_TIMEOUT*60)
		}
	})

	return list, nil
}

// invalidateListings drops the cached listings a membership or metadata
// change makes stale.
func (g *groupService) invalidateListings(groupID uint) {
	g.cache.SubmitTask(func(cache myredis.CacheService) {
		_ = cache.DeleteByPatterns([]string{groupListKey, groupMembersKey(groupID)})
	})
}
