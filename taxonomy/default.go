// Copyright 2026 The POETICS authors
//   This file is part of POETICS.
//
//  POETICS is free software: you can redistribute it and/or modify
//  it under the terms of the GNU General Public License as published by
//  the Free Software Foundation, either version 3 of the License, or
//  (at your option) any later version.
//
//  POETICS is distributed in the hope that it will be useful,
//  but WITHOUT ANY WARRANTY; without even the implied warranty of
//  MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
//  GNU General Public License for more details.
//
//  You should have received a copy of the GNU General Public License
//  along with POETICS.  If not, see <https://www.gnu.org/licenses/>.

package taxonomy

// Default returns the built-in imagery taxonomy tuned
// for the poetry of Du Fu. Single-character categories
// come first as they are the primary source of imagery.
func Default() *Taxonomy {
	ans, err := New(defaultSingleChar(), defaultMultiChar())
	if err != nil {
		panic(err) // the literal data below is always valid
	}
	return ans
}

func defaultSingleChar() []CategoryTerms {
	return []CategoryTerms{
		{Category: "自然景观", Terms: []string{
			"山", "水", "江", "河", "湖", "海", "云", "雨", "风", "雪", "月", "日", "星", "天", "地",
			"峰", "岭", "川", "溪", "泉", "波", "浪", "雾", "露", "霜", "霞", "虹", "雷", "电"}},
		{Category: "植物", Terms: []string{
			"花", "草", "树", "木", "林", "竹", "松", "梅", "兰", "菊", "柳", "桃", "李", "杏", "荷",
			"莲", "桂", "枫", "桑", "槐", "杨", "柏", "榕", "蕉", "芦", "茅"}},
		{Category: "动物", Terms: []string{
			"鸟", "兽", "鱼", "虫", "龙", "凤", "鹤", "雁", "鹰", "雀", "燕", "莺", "鹊", "鸦", "鸡",
			"犬", "马", "牛", "羊", "虎", "鹿", "猿", "蝉", "蝶", "蜂", "蚕", "萤"}},
		{Category: "建筑场所", Terms: []string{
			"楼", "台", "亭", "阁", "宫", "殿", "寺", "庙", "庵", "观", "宅", "院", "园", "庭",
			"城", "郭", "门", "窗", "桥", "路", "舟", "船", "车", "驿"}},
		{Category: "时间季节", Terms: []string{
			"春", "夏", "秋", "冬", "晨", "昏", "昼", "夜", "朝", "夕", "时", "节", "岁", "年"}},
		{Category: "情感象征", Terms: []string{
			"愁", "忧", "思", "念", "悲", "欢", "离", "合", "梦", "魂", "心", "泪", "酒", "歌", "笑"}},
		{Category: "器物", Terms: []string{
			"剑", "刀", "弓", "箭", "琴", "瑟", "棋", "书", "画", "笔", "墨", "纸", "砚", "灯", "烛"}},
		{Category: "人物", Terms: []string{
			"君", "臣", "民", "客", "僧", "道", "仙", "佛"}},
		{Category: "身体", Terms: []string{
			"头", "发", "眉", "眼", "耳", "鼻", "口", "手", "足", "心", "骨", "血", "魂"}},
	}
}

func defaultMultiChar() []CategoryTerms {
	return []CategoryTerms{
		{Category: "自然景观", Terms: []string{"江天", "天涯", "云霄", "乾坤", "江湖", "烟波", "风云"}},
		{Category: "植物", Terms: []string{"芙蓉", "梧桐", "杨柳", "松柏", "梅花", "菊花", "桃花"}},
		{Category: "动物", Terms: []string{"鸿雁", "沙鸥", "黄鹂", "白鹭", "蝴蝶", "蜻蜓", "蟋蟀"}},
		{Category: "建筑场所", Terms: []string{"长安", "洛阳", "宫殿", "楼台", "亭台", "城门", "江楼"}},
		{Category: "时间季节", Terms: []string{"重阳", "清明", "寒食", "元日", "春秋", "朝夕", "岁月"}},
		{Category: "情感象征", Terms: []string{"寂寞", "相思", "惆怅", "凄凉", "感慨", "伤悲", "欢乐"}},
	}
}
