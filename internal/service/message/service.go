// Package message implements group chat history and publication.
package message

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"juntos_server/internal/dao/mysql/repository"
	myredis "juntos_server/internal/dao/redis"
	"juntos_server/internal/dto/request"
	"juntos_server/internal/dto/respond"
	"juntos_server/internal/model"
	"juntos_server/internal/service/enrich"
	"juntos_server/internal/service/stream"
	"juntos_server/pkg/constants"
	messageenum "juntos_server/pkg/enum/message"
	"juntos_server/pkg/errorx"
	"juntos_server/pkg/util/snowflake"

	"go.uber.org/zap"
)

func groupMessagesKey(groupID uint) string {
	return fmt.Sprintf("group_messages_%d", groupID)
}

type messageService struct {
	repos  *repository.Repositories
	cache  myredis.AsyncCacheService
	broker stream.Broker
}

// NewMessageService wires the message service with its collaborators.
func NewMessageService(repos *repository.Repositories, cache myredis.AsyncCacheService, broker stream.Broker) *messageService {
	return &messageService{
		repos:  repos,
		cache:  cache,
		broker: broker,
	}
}

func toMessageInfo(m model.GroupMessage, profile *respond.ProfileInfo) respond.GroupMessageInfo {
	return respond.GroupMessageInfo{
		Uuid:           strconv.FormatInt(m.Uuid, 10),
		GroupID:        m.GroupID,
		SendId:         m.SendId,
		Conteudo:       m.Conteudo,
		Tipo:           m.Tipo,
		DataEnvio:      m.DataEnvio,
		CaminhoArquivo: m.CaminhoArquivo,
		Profile:        profile,
	}
}

// History returns the full message log of a group in non-decreasing
// sent-at order, each message enriched with its sender profile. A sender
// whose profile is gone keeps the message, with a nil profile.
func (s *messageService) History(groupID uint) ([]respond.GroupMessageInfo, error) {
	if cached, err := s.cache.Get(groupMessagesKey(groupID)); err == nil {
		var list []respond.GroupMessageInfo
		if err := json.Unmarshal([]byte(cached), &list); err == nil {
			return list, nil
		}
	}

	messages, err := s.repos.GroupMessage.FindByGroupIDAsc(groupID)
	if err != nil {
		zap.L().Error("load message history", zap.Uint("group_id", groupID), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	profiles, err := enrich.Lookup(messages,
		func(m model.GroupMessage) string { return m.SendId },
		s.repos.Profile.FindByUuids,
		func(p model.Profile) string { return p.Uuid },
	)
	if err != nil {
		zap.L().Error("enrich message history", zap.Uint("group_id", groupID), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	list := make([]respond.GroupMessageInfo, 0, len(messages))
	for _, m := range messages {
		list = append(list, toMessageInfo(m, profileInfoFor(profiles, m.SendId)))
	}

	s.cache.SubmitTask(func(cache myredis.CacheService) {
		if data, err := json.Marshal(list); err == nil {
			_ = cache.Set(groupMessagesKey(groupID), string(data), constants.REDIS_TIMEOUT*60)
		}
	})

	return list, nil
}

func profileInfoFor(profiles map[string]model.Profile, uuid string) *respond.ProfileInfo {
	p, ok := profiles[uuid]
	if !ok {
		return nil
	}
	return &respond.ProfileInfo{
		Uuid:        p.Uuid,
		Nome:        p.Nome,
		Email:       p.Email,
		TipoUsuario: p.TipoUsuario,
	}
}

// Send validates, persists and broadcasts one message. Blank content is
// rejected before any write, so a rejected send leaves no trace. The
// caller receives the persisted projection; delivery to its own stream
// happens through the broker like for every other subscriber.
func (s *messageService) Send(senderUuid string, req request.SendMessageRequest) (*respond.GroupMessageInfo, error) {
	if strings.TrimSpace(req.Conteudo) == "" {
		return nil, errorx.New(errorx.CodeInvalidParam, "message content must not be blank")
	}

	tipo := req.Tipo
	if tipo == "" {
		tipo = messageenum.Text
	}

	message := model.GroupMessage{
		Uuid:           snowflake.GenerateID(),
		GroupID:        req.GroupID,
		SendId:         senderUuid,
		Conteudo:       req.Conteudo,
		Tipo:           tipo,
		CaminhoArquivo: req.CaminhoArquivo,
	}
	if err := s.repos.GroupMessage.Create(&message); err != nil {
		zap.L().Error("persist message", zap.Uint("group_id", req.GroupID), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	profiles, err := s.repos.Profile.FindByUuids([]string{senderUuid})
	var profile *respond.ProfileInfo
	if err != nil {
		zap.L().Warn("sender profile lookup failed",
			zap.String("user_uuid", senderUuid), zap.Error(err))
	} else if len(profiles) > 0 {
		profile = &respond.ProfileInfo{
			Uuid:        profiles[0].Uuid,
			Nome:        profiles[0].Nome,
			Email:       profiles[0].Email,
			TipoUsuario: profiles[0].TipoUsuario,
		}
	}

	info := toMessageInfo(message, profile)

	if err := s.broker.Publish(context.Background(), stream.Event{
		GroupID: req.GroupID,
		Message: info,
	}); err != nil {
		// The message is persisted; subscribers recover it on their
		// next history load.
		zap.L().Error("broadcast message", zap.Uint("group_id", req.GroupID), zap.Error(err))
	}

	s.cache.SubmitTask(func(cache myredis.CacheService) {
		key := groupMessagesKey(req.GroupID)
		cached, err := cache.Get(key)
		if err != nil {
			return
		}
		var list []respond.GroupMessageInfo
		if err := json.Unmarshal([]byte(cached), &list); err != nil {
			return
		}
		list = append(list, info)
		if data, err := json.Marshal(list); err == nil {
			_ = cache.Set(key, string(data), constants.REDIS_TIMEOUT*60)
		}
	})

	return &info, nil
}
