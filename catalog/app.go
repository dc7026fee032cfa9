package catalog

import (
	"sort"
	"strings"

	"github.com/carbyne/bvdf/datafile"
	"github.com/carbyne/bvdf/ir"
)

// App is the summary of one app-info chunk. Fields come from the
// appinfo.common and appinfo.extended sections of the chunk's tree.
type App struct {
	AppID        uint32
	ChangeNumber uint32

	Type                  string
	Name                  string
	OSList                string
	Icon                  string
	ClientTGA             string
	ClientIcon            string
	Logo                  string
	LogoSmall             string
	ReleaseState          string
	LinuxClientIcon       string
	ControllerSupport     string
	ClientICNS            string
	MetacriticScore       int32
	MetacriticName        string
	CommunityVisibleStats bool
	CommunityHubVisible   bool
	WorkshopVisible       bool
	Exfgls                bool

	GameDir             string
	Developer           string
	Publisher           string
	Homepage            string
	GameManualURL       string
	ShowCDKeyOnLaunch   bool
	DLCAvailableOnStore bool

	data *ir.Collection
}

func (a *App) Tree() *ir.Collection {
	return a.data
}

// NewApp summarizes an app-info chunk.
func NewApp(ch *datafile.AppInfoChunk) *App {
	data := ch.Data
	if data == nil {
		data = ir.NewCollection()
	}
	common := sub(data, "appinfo", "common")
	extended := sub(data, "appinfo", "extended")
	res := &App{
		AppID:        ch.AppID,
		ChangeNumber: ch.LastChangeNumber,
		data:         data,

		Type:                  text(common, "type"),
		Name:                  text(common, "name"),
		OSList:                text(common, "oslist"),
		Icon:                  text(common, "icon"),
		ClientTGA:             text(common, "clienttga"),
		ClientIcon:            text(common, "clienticon"),
		Logo:                  text(common, "logo"),
		LogoSmall:             text(common, "logo_small"),
		ReleaseState:          text(common, "releasestate"),
		LinuxClientIcon:       text(common, "linuxclienticon"),
		ControllerSupport:     text(common, "controller_support"),
		ClientICNS:            text(common, "clienticns"),
		MetacriticScore:       -1,
		MetacriticName:        text(common, "metacritic_name"),
		CommunityVisibleStats: flag(common, "community_visible_stats"),
		CommunityHubVisible:   flag(common, "community_hub_visible"),
		WorkshopVisible:       flag(common, "workshop_visible"),
		Exfgls:                flag(common, "exfgls"),

		GameDir:             text(extended, "gamedir"),
		Developer:           text(extended, "developer"),
		Publisher:           text(extended, "publisher"),
		Homepage:            text(extended, "homepage"),
		GameManualURL:       text(extended, "gamemanualurl"),
		ShowCDKeyOnLaunch:   flag(extended, "showcdkeyonlaunch"),
		DLCAvailableOnStore: flag(extended, "dlcavailableonstore"),
	}
	if v := common.Get("metacritic_score"); v != nil {
		if n, err := ir.As[int32](v); err == nil {
			res.MetacriticScore = n
		}
	}
	return res
}

// Apps summarizes every chunk of a that carries data.
func Apps(a *datafile.AppInfo) []*App {
	res := make([]*App, 0, len(a.Chunks))
	for i := range a.Chunks {
		ch := &a.Chunks[i]
		if ch.Data == nil || ch.Data.Len() == 0 {
			continue
		}
		res = append(res, NewApp(ch))
	}
	return res
}

// ReleaseStates returns the distinct lower-cased release states of apps,
// sorted.
func ReleaseStates(apps []*App) []string {
	seen := map[string]bool{}
	for _, a := range apps {
		s := strings.ToLower(a.ReleaseState)
		if s == "" {
			continue
		}
		seen[s] = true
	}
	res := make([]string, 0, len(seen))
	for s := range seen {
		res = append(res, s)
	}
	sort.Strings(res)
	return res
}
