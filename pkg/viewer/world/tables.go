package world

import "worldmap/pkg/engine/geometry"

var defaultMarkers = []Marker{
	// Cities
	{Type: City, Name: "Vivec", X: 1216.2, Y: 1536.1, MinZoom: 1},
	{Type: City, Name: "Balmora", X: 1011.1, Y: 1240.4, MinZoom: 1},
	{Type: City, Name: "Ald'ruhn", X: 1040.7, Y: 971.2, MinZoom: 1},
	{Type: City, Name: "Sadrith Mora", X: 1671.6, Y: 1050.3, MinZoom: 1, MaxZoom: 2}, // Wolverine Hall and Tel Naga take over when zoomed in

	// Towns
	{Type: Town, Name: "Caldera", X: 1044.5, Y: 1105.4, MinZoom: 1},
	{Type: Town, Name: "Gnisis", X: 752.8, Y: 824.1, MinZoom: 1},
	{Type: Town, Name: "Maar Gan", X: 1007.3, Y: 781.3, MinZoom: 1},
	{Type: Town, Name: "Molag Mar", X: 1520.4, Y: 1426.7, MinZoom: 1},
	{Type: Town, Name: "Pelagiad", X: 1093.3, Y: 1400.0, MinZoom: 1},
	{Type: Town, Name: "Suran", X: 1298.8, Y: 1391.6, MinZoom: 1},
	{Type: Town, Name: "Raven Rock", X: 315, Y: 557.7, MinZoom: 1},

	{Type: Fort, Name: "Wolverine Hall", X: 1671.0, Y: 1072.0, MinZoom: 3},
	{Type: TelvanniTower, Name: "Tel Naga", X: 1670.9, Y: 1043.3, MinZoom: 3},
}

var mageGuildBalmora = geometry.V(1003, 1236)

var defaultQuests = []Quest{
	{
		Type:  QuestMagicGuild,
		Color: "#1c20eb",
		Items: []QuestItem{
			{Name: "Four Types of Mushrooms", Giver: "Ajira", Path: []geometry.Vec{mageGuildBalmora, {X: 1056, Y: 1452}}},
			{Name: "Fake Soul Gem", Giver: "Ajira", Path: []geometry.Vec{mageGuildBalmora}},
			{Name: "Four Types of Flowers", Giver: "Ajira", Path: []geometry.Vec{mageGuildBalmora, {X: 1110, Y: 1310}}},
			{Name: "Ceramic Bowl", Giver: "Ajira", Path: []geometry.Vec{mageGuildBalmora}},
			{Name: "Stolen Reports", Giver: "Ajira", Path: []geometry.Vec{mageGuildBalmora}},
			{Name: "Staff of Magnus", Giver: "Ajira", Path: []geometry.Vec{mageGuildBalmora, {X: 1462, Y: 1325}}},
			{Name: "Warlock ring", Giver: "Ajira", Path: []geometry.Vec{mageGuildBalmora, {X: 1423, Y: 1555}}},
		},
	},
}
