package api

// Nil-safe getters. Interceptors use them to tag logs with the records a
// call touches without knowing the concrete message type.

func (x *ReparseReceiptRequest) GetReceiptID() string {
	if x != nil {
		return x.ReceiptID
	}
	return ""
}

func (x *GetReceiptRequest) GetReceiptID() string {
	if x != nil {
		return x.ReceiptID
	}
	return ""
}

func (x *UpdateReceiptRequest) GetReceiptID() string {
	if x != nil {
		return x.ReceiptID
	}
	return ""
}

func (x *DeleteReceiptRequest) GetReceiptID() string {
	if x != nil {
		return x.ReceiptID
	}
	return ""
}

func (x *GetBreakdownRequest) GetReceiptID() string {
	if x != nil {
		return x.ReceiptID
	}
	return ""
}

func (x *AddToReceiptRequest) GetReceiptID() string {
	if x != nil {
		return x.ReceiptID
	}
	return ""
}

func (x *RemoveFromReceiptRequest) GetReceiptID() string {
	if x != nil {
		return x.ReceiptID
	}
	return ""
}

func (x *ListReceiptUsersRequest) GetReceiptID() string {
	if x != nil {
		return x.ReceiptID
	}
	return ""
}

func (x *UpdateItemRequest) GetItemID() string {
	if x != nil {
		return x.ItemID
	}
	return ""
}

func (x *DeleteItemRequest) GetItemID() string {
	if x != nil {
		return x.ItemID
	}
	return ""
}

func (x *AssignItemRequest) GetItemID() string {
	if x != nil {
		return x.ItemID
	}
	return ""
}

func (x *UnassignItemRequest) GetItemID() string {
	if x != nil {
		return x.ItemID
	}
	return ""
}

func (x *DeleteUserRequest) GetUserID() string {
	if x != nil {
		return x.UserID
	}
	return ""
}

func (x *AddToReceiptRequest) GetUserID() string {
	if x != nil {
		return x.UserID
	}
	return ""
}

func (x *RemoveFromReceiptRequest) GetUserID() string {
	if x != nil {
		return x.UserID
	}
	return ""
}

func (x *AssignItemRequest) GetUserID() string {
	if x != nil {
		return x.UserID
	}
	return ""
}

func (x *UnassignItemRequest) GetUserID() string {
	if x != nil {
		return x.UserID
	}
	return ""
}

func (x *ScanReceiptRequest) GetStrategy() string {
	if x != nil {
		return x.Strategy
	}
	return ""
}

func (x *ParseTextRequest) GetStrategy() string {
	if x != nil {
		return x.Strategy
	}
	return ""
}

func (x *ReparseReceiptRequest) GetStrategy() string {
	if x != nil {
		return x.Strategy
	}
	return ""
}
