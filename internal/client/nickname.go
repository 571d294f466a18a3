package client

import "math/rand/v2"

// 昵称词库
var (
	adjectives = []string{
		"幸运的", "疯狂的", "冷静的", "狡猾的", "无敌的",
		"彩色的", "旋转的", "飞快的", "迷糊的", "闪电",
		"倔强的", "安静的", "热情的", "神秘的", "贪心的",
	}

	nouns = []string{
		"红桃", "绿叶", "蓝鲸", "黄蜂", "万能牌",
		"火烈鸟", "章鱼", "企鹅", "浣熊", "狐狸",
		"骰子", "彗星", "仙人掌", "纸飞机", "小丑",
	}
)

// RandomNickname 生成随机昵称, at most 20 runes so it fits the join input.
func RandomNickname() string {
	return adjectives[rand.IntN(len(adjectives))] + nouns[rand.IntN(len(nouns))]
}
