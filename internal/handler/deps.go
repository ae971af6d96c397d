package handler

import (
	"github.com/ReyMar81/gestor-doc/internal/app/auth"
	"github.com/ReyMar81/gestor-doc/internal/app/chat"
	"github.com/ReyMar81/gestor-doc/internal/app/profile"
	"github.com/ReyMar81/gestor-doc/internal/app/translate"
	"github.com/ReyMar81/gestor-doc/internal/configs"
)

type AppDeps struct {
	Config     *configs.AppConfig
	Registry   *chat.Registry
	Tokens     auth.TokenResolver
	Profiles   *profile.Service
	Translator translate.Translator
}

// chatDeps assembles the collaborator bundle handed to every new connection.
func (d *AppDeps) chatDeps() chat.Deps {
	return chat.Deps{
		Registry:         d.Registry,
		Profiles:         d.Profiles,
		Translator:       d.Translator,
		DailyLimit:       d.Config.ChatDailyLimit,
		TranslateTimeout: d.Config.TranslateTimeout,
	}
}
